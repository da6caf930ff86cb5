// Package imagefs reads image folders from the local filesystem.
//
// The Source lists the JPEG and PNG files of a single folder and decodes
// them into opaque RGB JPEG buffers ready to be placed on a PDF page.
package imagefs
