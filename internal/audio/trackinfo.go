package audio

import (
	"github.com/bogem/id3v2"
)

// TrackInfo holds the ID3 fields shown while a track plays.
type TrackInfo struct {
	Artist string
	Title  string
	Album  string
}

// Empty reports whether no field was found.
func (i TrackInfo) Empty() bool {
	return i.Artist == "" && i.Title == "" && i.Album == ""
}

// ReadTrackInfo reads artist, title and album from the ID3v2 tag at path.
//
// Only the requested frames are parsed. A file without a tag yields an
// empty TrackInfo and no error. The file itself is never modified.
//
// Example:
//
//	info, err := ReadTrackInfo("./out/music.mp3")
//	if err == nil && !info.Empty() {
//	    fmt.Printf("Now playing: %s - %s\n", info.Artist, info.Title)
//	}
func ReadTrackInfo(path string) (TrackInfo, error) {
	tag, err := id3v2.Open(path, id3v2.Options{
		Parse:       true,
		ParseFrames: []string{"Artist", "Title", "Album/Movie/Show title"},
	})
	if err != nil {
		return TrackInfo{}, err
	}
	defer tag.Close()

	return TrackInfo{
		Artist: tag.Artist(),
		Title:  tag.Title(),
		Album:  tag.Album(),
	}, nil
}
