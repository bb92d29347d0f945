// Package filesystem provides local path helpers and the fsnotify-based
// watcher that drives watch mode.
package filesystem
