package services

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/custodia-labs/pdfdesk/internal/core/domain"
	"github.com/custodia-labs/pdfdesk/internal/core/ports/driven"
)

// --- Image source ---

// fakeImage is one image known to fakeImageSource.
type fakeImage struct {
	width, height int
	loadErr       error
	converted     bool
}

// fakeImageSource implements driven.ImageSource over an in-memory folder map.
type fakeImageSource struct {
	folders map[string][]string
	images  map[string]fakeImage
	listErr error
	loaded  []string
}

func newFakeImageSource() *fakeImageSource {
	return &fakeImageSource{
		folders: make(map[string][]string),
		images:  make(map[string]fakeImage),
	}
}

func (f *fakeImageSource) add(folder, path string, img fakeImage) {
	f.folders[folder] = append(f.folders[folder], path)
	f.images[path] = img
}

func (f *fakeImageSource) List(_ context.Context, dir string) ([]domain.ImageRef, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	paths, ok := f.folders[dir]
	if !ok {
		return nil, domain.NewOpError(domain.OpConvert, domain.KindEnumeration, dir, domain.ErrInvalidInput)
	}
	refs := make([]domain.ImageRef, len(paths))
	for i, p := range paths {
		refs[i] = domain.ImageRef{Path: p}
	}
	return refs, nil
}

func (f *fakeImageSource) Load(_ context.Context, ref domain.ImageRef, _ int) (*domain.Raster, error) {
	f.loaded = append(f.loaded, ref.Path)
	img, ok := f.images[ref.Path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if img.loadErr != nil {
		return nil, domain.NewOpError(domain.OpConvert, domain.KindItem, ref.Path, img.loadErr)
	}
	return &domain.Raster{Width: img.width, Height: img.height, JPEG: []byte{0xff, 0xd8}, Converted: img.converted}, nil
}

// --- Composer ---

// composedPage records one AddImagePage call.
type composedPage struct {
	name      string
	placement domain.Placement
}

type fakeComposer struct {
	page    domain.PageSize
	doc     *fakeDocument
	saveErr error
}

func (c *fakeComposer) New(page domain.PageSize) driven.PageDocument {
	c.page = page
	c.doc = &fakeDocument{saveErr: c.saveErr}
	return c.doc
}

type fakeDocument struct {
	pages   []composedPage
	saved   string
	saveErr error
}

func (d *fakeDocument) AddImagePage(name string, _ *domain.Raster, p domain.Placement) error {
	d.pages = append(d.pages, composedPage{name: name, placement: p})
	return nil
}

func (d *fakeDocument) PageCount() int { return len(d.pages) }

func (d *fakeDocument) Save(path string) error {
	if d.saveErr != nil {
		return d.saveErr
	}
	d.saved = path
	return nil
}

// --- Document security ---

// fakeDoc is a document known to fakeSecurity.
type fakeDoc struct {
	pages    int
	password string // empty means not encrypted
}

// fakeSecurity implements driven.DocumentSecurity over an in-memory file map.
type fakeSecurity struct {
	mu       sync.Mutex
	docs     map[string]fakeDoc
	writeErr error
	calls    []string
}

func newFakeSecurity() *fakeSecurity {
	return &fakeSecurity{docs: make(map[string]fakeDoc)}
}

func (f *fakeSecurity) Inspect(_ context.Context, path, password string) (*domain.DocumentInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	if doc.password != "" && doc.password != password {
		return nil, domain.ErrWrongPassword
	}
	return &domain.DocumentInfo{Path: path, Pages: doc.pages, Encrypted: doc.password != ""}, nil
}

func (f *fakeSecurity) Encrypt(_ context.Context, src, dst, password string, keyLength int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "encrypt")
	if f.writeErr != nil {
		return f.writeErr
	}
	if !domain.ValidKeyLength(keyLength) {
		return domain.ErrInvalidInput
	}
	doc := f.docs[src]
	doc.password = password
	f.docs[dst] = doc
	return nil
}

func (f *fakeSecurity) Decrypt(_ context.Context, src, dst, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "decrypt")
	if f.writeErr != nil {
		return f.writeErr
	}
	doc := f.docs[src]
	if doc.password != password {
		return domain.ErrWrongPassword
	}
	doc.password = ""
	f.docs[dst] = doc
	return nil
}

func (f *fakeSecurity) Rewrite(_ context.Context, src, dst string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "rewrite")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.docs[dst] = f.docs[src]
	return nil
}

func (f *fakeSecurity) exists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.docs[path]
	return ok
}

// --- Rasterizer ---

// fakeRasterizer writes an empty file for every rendered page.
type fakeRasterizer struct {
	unavailable bool
	failPage    int
	rendered    []int
	opts        domain.RenderOptions
}

func (r *fakeRasterizer) CheckAvailable() error {
	if r.unavailable {
		return domain.ErrRendererNotFound
	}
	return nil
}

func (r *fakeRasterizer) RenderPage(
	_ context.Context, _ string, page int, dstBase string, opts domain.RenderOptions,
) (string, error) {
	if page == r.failPage {
		return "", errors.New("exit status 1")
	}
	r.rendered = append(r.rendered, page)
	r.opts = opts
	path := dstBase + opts.Format.Extension()
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// --- Embedded image extractor ---

type fakeExtractor struct {
	files []string
	err   error
}

func (e *fakeExtractor) ExtractImages(_ context.Context, _, _, _ string) ([]string, error) {
	return e.files, e.err
}

// --- Folder watcher ---

// fakeWatcher fires onChange a fixed number of times, then waits for cancel.
type fakeWatcher struct {
	changes  int
	err      error
	onChange func(i int)
}

func (w *fakeWatcher) Watch(ctx context.Context, _ string, onChange func()) error {
	if w.err != nil {
		return w.err
	}
	for i := 0; i < w.changes; i++ {
		if w.onChange != nil {
			w.onChange(i)
		}
		onChange()
	}
	<-ctx.Done()
	return ctx.Err()
}

// --- History ---

// failingHistoryStore implements driven.HistoryStore and fails every write.
type failingHistoryStore struct{}

func (failingHistoryStore) Record(context.Context, domain.HistoryEntry) error {
	return errors.New("disk full")
}
func (failingHistoryStore) Get(context.Context, string) (*domain.HistoryEntry, error) {
	return nil, domain.ErrNotFound
}
func (failingHistoryStore) List(context.Context, int) ([]domain.HistoryEntry, error) { return nil, nil }
func (failingHistoryStore) Prune(context.Context, int) error                       { return nil }
func (failingHistoryStore) Clear(context.Context) error                            { return nil }

// recordedResults is a recorder that keeps every result.
type recordedResults struct {
	mu      sync.Mutex
	results []*domain.Result
}

func (r *recordedResults) Record(_ context.Context, result *domain.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *recordedResults) last() *domain.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.results) == 0 {
		return nil
	}
	return r.results[len(r.results)-1]
}

// staticSettings returns fixed settings.
type staticSettings struct {
	settings domain.AppSettings
	err      error
}

func (s staticSettings) Get() (*domain.AppSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	copied := s.settings
	return &copied, nil
}
