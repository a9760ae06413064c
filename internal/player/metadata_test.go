package player

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createMinimalMP3 creates a minimal valid MP3 file for testing.
// Returns MP3 frame header + padding (417 bytes total for 128kbps frame).
func createMinimalMP3(t *testing.T, path string) {
	t.Helper()
	// MP3 frame header (MPEG1 Layer3, 128kbps, 44100Hz, stereo) + padding
	mp3Frame := make([]byte, 417)
	mp3Frame[0] = 0xff
	mp3Frame[1] = 0xfb
	mp3Frame[2] = 0x90
	mp3Frame[3] = 0x00

	require.NoError(t, os.WriteFile(path, mp3Frame, 0o600))
}

// tagMP3 prepends an ID3v2 tag to the file at path.
func tagMP3(t *testing.T, path, title, artist, album string) {
	t.Helper()
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(title)
	tag.SetArtist(artist)
	tag.SetAlbum(album)
	require.NoError(t, tag.Save())
}

func TestReadTags_ID3v2(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagged.mp3")
	createMinimalMP3(t, path)
	tagMP3(t, path, "Intro", "Band", "First Album")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	tags := readTags(f)

	assert.Equal(t, Tags{Title: "Intro", Artist: "Band", Album: "First Album"}, tags)
	pos, err := f.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Zero(t, pos, "reader is rewound for the decoder")
}

func TestSkipID3v2_RealTag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagged.mp3")
	createMinimalMP3(t, path)
	tagMP3(t, path, "Intro", "Band", "First Album")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, skipID3v2(f))

	sync := make([]byte, 2)
	_, err = f.Read(sync)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xfb}, sync, "positioned at the first audio frame")
}

func TestFileDecoder_DecodeTaggedGarbageFLAC(t *testing.T) {
	// A FLAC with a leading ID3v2 tag but no stream: the tag is skipped and
	// the decoder reports the missing stream marker, not the tag.
	path := filepath.Join(t.TempDir(), "bad.flac")
	createMinimalMP3(t, path)
	tagMP3(t, path, "t", "a", "b")

	d := NewFileDecoder(quietLogger())
	rc, err := d.Open(path)
	require.NoError(t, err)

	_, err = d.Decode(path, rc)
	assert.Error(t, err)
}
