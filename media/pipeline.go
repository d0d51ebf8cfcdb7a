package media

import (
	"bytes"
	"context"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/gianghaison/gianghaison.me/storage"
	"github.com/gianghaison/gianghaison.me/utils"
)

const (
	// MaxUploadBytes is the raw payload ceiling checked before anything else.
	MaxUploadBytes = 10 << 20
	// MaxWidth is the target width; wider images are scaled down, never up.
	MaxWidth = 1200
	// WebPQuality is the fixed re-encode quality.
	WebPQuality = 85

	cacheControl = "public, max-age=31536000"
)

// Media folders. Anything else is rejected before upload.
const (
	FolderBlog = "blog"
	FolderArt  = "art"
)

var allowedFormats = map[string]struct{}{
	"jpeg": {}, "jpg": {}, "png": {}, "gif": {}, "webp": {}, "avif": {},
}

// Metadata describes an image buffer before or after transformation.
type Metadata struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int    `json:"size"`
}

// UploadResult carries the stored location plus both metadata sets so callers
// can show before/after size savings.
type UploadResult struct {
	URL       string   `json:"url"`
	Key       string   `json:"key"`
	Original  Metadata `json:"original"`
	Processed Metadata `json:"processed"`
}

// Pipeline ingests uploaded images: validate, transform, store. Each call is
// strictly sequential with no internal retries; the caller decides whether to
// retry the whole upload.
type Pipeline struct {
	store storage.ObjectStore
}

// NewPipeline wires the pipeline to an object store.
func NewPipeline(store storage.ObjectStore) *Pipeline {
	return &Pipeline{store: store}
}

// ValidFolder reports whether folder is a known media namespace.
func ValidFolder(folder string) bool {
	return folder == FolderBlog || folder == FolderArt
}

// Upload runs the full ingestion sequence and stores the result under
// folder/<generated-name>.webp. Gates fire in order: folder, payload size,
// format, decodability. The image is always re-encoded to webp at fixed
// quality, even when no resize happens, so stored formats stay uniform.
func (pl *Pipeline) Upload(ctx context.Context, data []byte, originalName, folder string) (*UploadResult, error) {
	if !ValidFolder(folder) {
		return nil, utils.NewAppError(utils.KindInvalidEnumValue, "invalid folder, must be blog or art")
	}
	if len(data) > MaxUploadBytes {
		return nil, utils.NewAppError(utils.KindPayloadTooLarge, "file size exceeds 10MB limit")
	}

	format := detectFormat(data)
	if _, ok := allowedFormats[format]; !ok {
		return nil, utils.NewAppError(utils.KindUnsupportedFormat, "unsupported format: "+format)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, utils.WrapAppError(utils.KindInvalidImage, "could not decode image", err)
	}

	bounds := src.Bounds()
	original := Metadata{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
		Size:   len(data),
	}

	processed, err := transform(src)
	if err != nil {
		return nil, utils.WrapAppError(utils.KindInvalidImage, "could not encode image", err)
	}

	key := folder + "/" + GenerateFilename(originalName, "webp")
	url, err := pl.store.Put(ctx, key, processed.data, "image/webp", cacheControl)
	if err != nil {
		return nil, utils.WrapAppError(utils.KindStorageWriteFailed, "failed to store image", err)
	}

	return &UploadResult{
		URL:      url,
		Key:      key,
		Original: original,
		Processed: Metadata{
			Width:  processed.width,
			Height: processed.height,
			Format: "webp",
			Size:   len(processed.data),
		},
	}, nil
}

// Delete removes a stored object by key. The catalog entry referencing the
// key is not unlinked here; that is the caller's responsibility.
func (pl *Pipeline) Delete(ctx context.Context, key string) error {
	if err := pl.store.Delete(ctx, key); err != nil {
		return utils.WrapAppError(utils.KindStorageWriteFailed, "failed to delete object", err)
	}
	return nil
}

// List returns the stored objects under the optional folder prefix, in
// whatever order the underlying store yields them.
func (pl *Pipeline) List(ctx context.Context, prefix string) ([]storage.StoredObject, error) {
	objects, err := pl.store.List(ctx, prefix)
	if err != nil {
		return nil, utils.WrapAppError(utils.KindStorageWriteFailed, "failed to list objects", err)
	}
	return objects, nil
}

type transformed struct {
	data   []byte
	width  int
	height int
}

// transform scales the image down to MaxWidth when wider (aspect ratio
// preserved) and re-encodes to webp. Never upscales.
func transform(src image.Image) (*transformed, error) {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > MaxWidth {
		scaled := MaxWidth * height / width
		dst := image.NewRGBA(image.Rect(0, 0, MaxWidth, scaled))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
		width, height = MaxWidth, scaled
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: WebPQuality}); err != nil {
		return nil, err
	}
	return &transformed{data: buf.Bytes(), width: width, height: height}, nil
}

// detectFormat sniffs the buffer's content type and maps it to the short
// format name the allow-list uses. Sniffing sees formats the decoders do not
// (avif in particular), so unsupported-format beats invalid-image for inputs
// we can at least identify.
func detectFormat(data []byte) string {
	mt := mimetype.Detect(data)
	if ext := strings.TrimPrefix(mt.Extension(), "."); ext != "" {
		return ext
	}
	return strings.TrimPrefix(mt.String(), "image/")
}
