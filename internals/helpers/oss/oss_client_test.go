package helper

import (
	"image"
	"io"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "surat-keterangan-2024", slugify("  Surat Keterangan_2024 "))
	assert.Equal(t, "file", slugify("!!!"))
}

func TestBuildObjectKey(t *testing.T) {
	s := &OSSService{Prefix: "sarpras"}
	now := time.Date(2024, 8, 1, 9, 30, 0, 0, time.UTC)

	key := s.buildObjectKey("schools/ABC/lampiran", "Denah Sekolah.PDF", now)

	assert.True(t, strings.HasPrefix(key, "sarpras/schools/abc/lampiran/denah-sekolah_20240801_093000_"), key)
	assert.True(t, strings.HasSuffix(key, ".pdf"), key)
}

func TestPublicURLRoundTrip(t *testing.T) {
	s := &OSSService{Endpoint: "https://oss-ap-southeast-5.aliyuncs.com", BucketName: "sarpras"}
	url := s.PublicURL("schools/x/a.pdf")
	assert.Equal(t, "https://sarpras.oss-ap-southeast-5.aliyuncs.com/schools/x/a.pdf", url)

	key, err := s.KeyFromPublicURL(url)
	require.NoError(t, err)
	assert.Equal(t, "schools/x/a.pdf", key)

	s.PublicBase = "https://cdn.example.id/"
	assert.Equal(t, "https://cdn.example.id/k.pdf", s.PublicURL("k.pdf"))
	key, err = s.KeyFromPublicURL("https://cdn.example.id/k.pdf")
	require.NoError(t, err)
	assert.Equal(t, "k.pdf", key)

	_, err = s.KeyFromPublicURL("")
	assert.Error(t, err)
}

func TestDownscaleIfNeeded(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))

	out := downscaleIfNeeded(src, 100, 100)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())

	same := downscaleIfNeeded(src, 800, 800)
	assert.Same(t, src, same.(*image.RGBA))
}

func TestDetectContentTypeKeepsBody(t *testing.T) {
	body := "%PDF-1.4 isi dokumen"
	ct, r, err := detectContentType(strings.NewReader(body), "laporan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)

	all, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, body, string(all))
}

func TestCheckAttachment(t *testing.T) {
	_, err := CheckAttachment(nil)
	assert.Error(t, err)

	_, err = CheckAttachment(&multipart.FileHeader{Filename: "virus.exe", Size: 10})
	assert.Error(t, err)

	_, err = CheckAttachment(&multipart.FileHeader{Filename: "besar.pdf", Size: 11 * 1024 * 1024})
	assert.Error(t, err)

	kind, err := CheckAttachment(&multipart.FileHeader{Filename: "foto.JPG", Size: 1024})
	require.NoError(t, err)
	assert.NotZero(t, kind)
}

func TestOwnedAttachmentKey(t *testing.T) {
	s := &OSSService{PublicBase: "https://cdn.example.id", Prefix: "sarpras"}
	own := uuid.New()
	other := uuid.New()
	dir := "sarpras/" + AttachmentDir(own) + "/"

	key, ok := s.OwnedAttachmentKey("https://cdn.example.id/"+dir+"sk_1.pdf", own)
	require.True(t, ok)
	assert.Equal(t, dir+"sk_1.pdf", key)

	cases := map[string]string{
		"sekolah lain":         "https://cdn.example.id/sarpras/" + AttachmentDir(other) + "/sk_1.pdf",
		"folder sisipan":       "https://cdn.example.id/sarpras/tmp/" + AttachmentDir(own) + "/sk_1.pdf",
		"tanpa prefix":         "https://cdn.example.id/" + AttachmentDir(own) + "/sk_1.pdf",
		"folder saja":          "https://cdn.example.id/" + dir,
		"naik direktori":       "https://cdn.example.id/" + dir + "../../" + other.String() + "/lampiran/x.pdf",
		"query mengandung dir": "https://cdn.example.id/lain.pdf?x=/" + dir,
		"kosong":               "",
	}
	for name, url := range cases {
		_, ok := s.OwnedAttachmentKey(url, own)
		assert.False(t, ok, name)
	}
}
