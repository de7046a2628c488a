package model

import (
	"io"
	"slices"
	"time"

	"docshelf/internal/category"
)

// Document is the metadata record for one stored file.
// This is a pure domain model; every storage strategy serializes it as-is.
type Document struct {
	ID             string         `json:"id"`
	DocumentNumber string         `json:"document_number"`
	Category       category.Key   `json:"category"`
	Name           string         `json:"name"`
	Size           int64          `json:"size"`
	UploadDate     time.Time      `json:"upload_date"`
	Tags           []string       `json:"tags"`
	Description    string         `json:"description"`
	Links          []DocumentLink `json:"links"`
	LastOpened     *time.Time     `json:"last_opened"`
	// StoragePath is an object-store key or an absolute filesystem path depending on the strategy.
	StoragePath string `json:"storage_path,omitempty"`
	// LocalPath is only read, for records written before StoragePath existed.
	LocalPath string `json:"local_path,omitempty"`
}

// DocumentLink is a reference URL attached to a document.
type DocumentLink struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	AddedDate time.Time `json:"added_date"`
}

// Path returns the locator used to open the file, preferring StoragePath.
func (d Document) Path() string {
	if d.StoragePath != "" {
		return d.StoragePath
	}
	return d.LocalPath
}

// HasTag reports whether tag is attached to the document.
func (d Document) HasTag(tag string) bool {
	return slices.Contains(d.Tags, tag)
}

// Clone returns a copy that shares no slices or pointers with d.
func (d Document) Clone() Document {
	out := d
	out.Tags = slices.Clone(d.Tags)
	out.Links = slices.Clone(d.Links)
	if d.LastOpened != nil {
		t := *d.LastOpened
		out.LastOpened = &t
	}
	return out
}

// DocumentPatch carries the fields to merge into an existing document. Nil fields are left untouched.
type DocumentPatch struct {
	Description *string
	Tags        []string
	Links       []DocumentLink
	LastOpened  *time.Time
}

// Apply merges p into d and returns the result.
func (p DocumentPatch) Apply(d Document) Document {
	out := d.Clone()
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Tags != nil {
		out.Tags = slices.Clone(p.Tags)
	}
	if p.Links != nil {
		out.Links = slices.Clone(p.Links)
	}
	if p.LastOpened != nil {
		t := *p.LastOpened
		out.LastOpened = &t
	}
	return out
}

// FileUpload is a file handed to a storage strategy for physical storage.
// Size is -1 when the length is not known up front.
type FileUpload struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// UploadResult is what a strategy reports back after storing a file.
type UploadResult struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"type"`
	StoragePath string `json:"storage_path,omitempty"`
}
