// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - File writing and directory creation for fetcher-owned files
//   - Derived output paths
//   - Image inspection and preview generation
//
// # File Operations
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "./played.m3u", []byte("content"))
//
//	// Ensure the parent directory of a file exists
//	err := ioutils.EnsureParentDir("./history/played.m3u")
//
// # Image Processing
//
// The ImageService inspects downloaded images and renders previews:
//
//	svc := ioutils.NewImageService()
//
//	info, _ := svc.Describe("./out/image.jpg")
//	err := svc.WritePreview(ctx, "./out/image.jpg", "./out/image_preview.jpg", 256)
package ioutils
