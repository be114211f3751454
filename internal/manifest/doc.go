// Package manifest reads and classifies manifest files.
//
// A manifest is a UTF-8 text file with one entry per line:
//
//	<absolute-url> <destination-directory>
//
// There is no header, comment syntax or escaping.
//
// # Reading
//
// Reader streams the file line by line:
//
//	r, err := manifest.Open("file/inFile.txt")
//	defer r.Close()
//	for r.Next() {
//	    line := r.Line()
//	}
//
// # Classification
//
// Classifier splits a line into URL and destination and decides the resource
// kind. With ClassifyByLine, the kind comes from the whole line text: any
// occurrence of "jpg" makes it an image, otherwise any "mp3" makes it audio,
// otherwise it is unknown and skipped. This means the destination directory
// can influence the kind, which manifest authors must keep in mind.
package manifest
