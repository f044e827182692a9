// Package contacts reads exhibitor and contact lists from CSV.
//
// Columns are addressed by loosely matched header names: surrounding spaces
// and case are ignored, and a leading UTF-8 byte order mark is dropped. Rows
// carry no identity beyond their position in the file.
package contacts
