// Package deps checks for the external executables movietag can drive.
package deps
