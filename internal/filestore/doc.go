// Package filestore is the file I/O collaborator for the editing
// engine: it loads and saves document text against the local file
// system with size and binary-content checks, and watches open files
// for external modification via fsnotify.
package filestore
