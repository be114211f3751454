// Package audio plays downloaded tracks and records what was played.
//
// # Playback
//
// Player delegates decoding and output to an Engine and blocks until the
// file has finished:
//
//	player := audio.NewPlayer(audio.NewOtoEngine())
//	err := player.Play(ctx, "./out/music.mp3")
//
// The default OtoEngine decodes MP3 with go-mp3 and writes PCM through oto.
// Tests and alternative back ends implement the Engine and Stream interfaces.
//
// # Track Info
//
// ReadTrackInfo reads the ID3v2 artist, title and album of a file without
// changing it:
//
//	info, _ := audio.ReadTrackInfo("./out/music.mp3")
//
// # History Playlist
//
// PlaylistCreator renders the tracks played during a run:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true)
//	content := creator.CreatePlaylist("manifest run", played)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
package audio
