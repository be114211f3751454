package audio

import (
	"strings"
	"testing"
	"time"

	"github.com/handiism/manifest-fetcher/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	creator := NewPlaylistCreator(FormatM3U, false)

	content := creator.CreatePlaylist("run", createTestTracks())

	if content != "/out/a/music.mp3\n/out/b/music.mp3\n" {
		t.Errorf("M3U = %q", content)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	creator := NewPlaylistCreator(FormatM3U, true)

	content := creator.CreatePlaylist("run", createTestTracks())

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:180,Artist - Song\n") {
		t.Errorf("Extended M3U should contain tagged EXTINF, got %q", content)
	}
	if !strings.Contains(content, "#EXTINF:42,music.mp3\n") {
		t.Errorf("Extended M3U should fall back to file name, got %q", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	creator := NewPlaylistCreator(FormatPLS, false)

	content := creator.CreatePlaylist("run", createTestTracks())

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File2=/out/b/music.mp3") {
		t.Error("PLS should contain File2=")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should contain NumberOfEntries=2")
	}
}

func TestPlaylistCreator_WPLEscape(t *testing.T) {
	creator := NewPlaylistCreator(FormatWPL, false)
	tracks := []model.PlayedTrack{{Path: "/out/<r&b>/music.mp3"}}

	content := creator.CreatePlaylist("Run \"1\"", tracks)

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, "&lt;r&amp;b&gt;") {
		t.Errorf("WPL should escape media src, got %q", content)
	}
	if !strings.Contains(content, "Run &quot;1&quot;") {
		t.Error("WPL should escape title")
	}
}

func TestParsePlaylistFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    PlaylistFormat
		wantExt string
	}{
		{"m3u", FormatM3U, ".m3u"},
		{"PLS", FormatPLS, ".pls"},
		{"wpl", FormatWPL, ".wpl"},
		{"zpl", FormatM3U, ".m3u"},
	}

	for _, tt := range tests {
		got := ParsePlaylistFormat(tt.input)
		if got != tt.want {
			t.Errorf("ParsePlaylistFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if ext := NewPlaylistCreator(got, false).Extension(); ext != tt.wantExt {
			t.Errorf("Extension() for %q = %q, want %q", tt.input, ext, tt.wantExt)
		}
	}
}

func createTestTracks() []model.PlayedTrack {
	return []model.PlayedTrack{
		{Path: "/out/a/music.mp3", Artist: "Artist", Title: "Song", Duration: 180 * time.Second},
		{Path: "/out/b/music.mp3", Duration: 42 * time.Second},
	}
}
