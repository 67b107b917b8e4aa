// Package tags renders metadata records as Matroska tag XML
// (Tags > Tag > Simple{Name, String}) and reads such documents back.
// Nothing here touches the filesystem.
package tags
