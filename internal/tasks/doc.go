// Package tasks orchestrates setlist exports with real-time progress reporting.
//
// # Export
//
// [ExportEngine.Run] fetches every setlist for a user or an artist through a [services.Service],
// then writes them with the formatter to {output_dir}/{id}_setlists.{ext}.
//
// # Progress Reporting
//
// Operations send [ProgressUpdate] values on an optional channel. Updates use select with default
// so a slow or absent reader never stalls the export. The caller owns the channel.
package tasks
