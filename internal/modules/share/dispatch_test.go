package share

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClipboard struct {
	copied []string
	err    error
}

func (f *fakeClipboard) CopyText(ctx context.Context, text string) error {
	f.copied = append(f.copied, text)
	return f.err
}

type fakeSheet struct {
	images   bool
	err      error
	calls    int
	lastFile *File
	lastText string
}

func (f *fakeSheet) SupportsImages() bool { return f.images }

func (f *fakeSheet) Share(ctx context.Context, title, text, url string, file *File) error {
	f.calls++
	f.lastFile = file
	f.lastText = text
	return f.err
}

func dispatchCard() Card {
	return Card{
		Slug:  "by-the-river",
		Title: "By the River",
		URL:   "https://saanj.studio/anthology/by-the-river",
	}
}

func TestDispatchDesktopCopiesLinkOnly(t *testing.T) {
	clipboard := &fakeClipboard{}
	raster := &fakeRaster{data: []byte("png")}
	p := newTestPipeline(raster, nil)

	outcome, err := p.Dispatch(context.Background(), dispatchCard(), Client{
		Mobile:    false,
		Clipboard: clipboard,
		Sheet:     &fakeSheet{images: true},
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeCopiedLink, outcome)
	assert.Equal(t, []string{"https://saanj.studio/anthology/by-the-river"}, clipboard.copied)
	// Desktop never pays for image generation.
	assert.Zero(t, raster.lastOpt.Width)
}

func TestDispatchDesktopClipboardFailureIsReported(t *testing.T) {
	clipboard := &fakeClipboard{err: errors.New("denied")}
	p := newTestPipeline(&fakeRaster{}, nil)

	_, err := p.Dispatch(context.Background(), dispatchCard(), Client{Clipboard: clipboard})
	assert.Error(t, err)
}

func TestDispatchMobileWithImageSupport(t *testing.T) {
	sheet := &fakeSheet{images: true}
	p := newTestPipeline(&fakeRaster{data: []byte("png")}, nil)

	outcome, err := p.Dispatch(context.Background(), dispatchCard(), Client{
		Mobile: true,
		Sheet:  sheet,
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSharedWithImage, outcome)
	require.NotNil(t, sheet.lastFile)
	assert.Equal(t, "by-the-river-share-card.png", sheet.lastFile.Name)
	assert.Contains(t, sheet.lastText, "By the River")
}

func TestDispatchMobileWithoutImageSupportSharesTextOnly(t *testing.T) {
	sheet := &fakeSheet{images: false}
	raster := &fakeRaster{data: []byte("png")}
	p := newTestPipeline(raster, nil)

	outcome, err := p.Dispatch(context.Background(), dispatchCard(), Client{
		Mobile: true,
		Sheet:  sheet,
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSharedTextOnly, outcome)
	assert.Nil(t, sheet.lastFile)
	assert.Zero(t, raster.lastOpt.Width)
}

func TestDispatchMobileGenerationFailureDegradesToTextShare(t *testing.T) {
	sheet := &fakeSheet{images: true}
	p := newTestPipeline(&fakeRaster{err: errors.New("boom")}, nil)

	outcome, err := p.Dispatch(context.Background(), dispatchCard(), Client{
		Mobile: true,
		Sheet:  sheet,
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeSharedTextOnly, outcome)
	assert.Equal(t, 1, sheet.calls)
	assert.Nil(t, sheet.lastFile)
}

func TestDispatchMobileCancelIsQuietNoop(t *testing.T) {
	clipboard := &fakeClipboard{}
	sheet := &fakeSheet{images: true, err: ErrShareCancelled}
	p := newTestPipeline(&fakeRaster{data: []byte("png")}, nil)

	outcome, err := p.Dispatch(context.Background(), dispatchCard(), Client{
		Mobile:    true,
		Clipboard: clipboard,
		Sheet:     sheet,
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, outcome)
	assert.Empty(t, clipboard.copied, "cancellation must not fall back to clipboard")
}

func TestDispatchMobileSheetFailureFallsBackToClipboard(t *testing.T) {
	clipboard := &fakeClipboard{}
	sheet := &fakeSheet{images: true, err: errors.New("sheet broke")}
	p := newTestPipeline(&fakeRaster{data: []byte("png")}, nil)

	outcome, err := p.Dispatch(context.Background(), dispatchCard(), Client{
		Mobile:    true,
		Clipboard: clipboard,
		Sheet:     sheet,
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeCopiedLink, outcome)
	assert.Len(t, clipboard.copied, 1)
}

func TestDispatchMobileWithoutSheetFallsBackToClipboard(t *testing.T) {
	clipboard := &fakeClipboard{}
	p := newTestPipeline(&fakeRaster{data: []byte("png")}, nil)

	outcome, err := p.Dispatch(context.Background(), dispatchCard(), Client{
		Mobile:    true,
		Clipboard: clipboard,
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeCopiedLink, outcome)
	assert.Len(t, clipboard.copied, 1)
}
