package domain

import "strings"

// Session holds the selections the interactive shell carries between
// actions. It is passed explicitly to every request builder.
type Session struct {
	// Folder is the selected image folder.
	Folder string

	// ImageCount is the number of images found when Folder was selected.
	ImageCount int
}

// SelectFolder records the chosen image folder.
func (s *Session) SelectFolder(path string, images int) {
	s.Folder = path
	s.ImageCount = images
}

// HasFolder returns true if a folder was selected.
func (s *Session) HasFolder() bool {
	return strings.TrimSpace(s.Folder) != ""
}

// ConvertRequest builds a conversion of the selected folder.
func (s *Session) ConvertRequest(output string) (ConvertRequest, error) {
	if !s.HasFolder() {
		return ConvertRequest{}, ErrNoFolderSelected
	}
	return ConvertRequest{Folder: s.Folder, Output: output}, nil
}
