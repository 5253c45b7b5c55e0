package util

import (
	"Murmur/internal/pkg/consts"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

var resizableImages = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/bmp":  {},
	"image/tiff": {},
}

// DetectMediaType 按文件内容识别 MIME，仅接受图片、视频、音频
func DetectMediaType(path string) (string, string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", "", err
	}

	contentType := mt.String()
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}

	if !strings.HasPrefix(contentType, consts.MimePrefixImage) &&
		!strings.HasPrefix(contentType, consts.MimePrefixVideo) &&
		!strings.HasPrefix(contentType, consts.MimePrefixAudio) {
		return "", "", fmt.Errorf("unsupported media type %s", contentType)
	}
	return contentType, mt.Extension(), nil
}

// IsResizableImage imaging 能够解码并重新编码的格式
func IsResizableImage(contentType string) bool {
	_, ok := resizableImages[contentType]
	return ok
}

// ShrinkImage 长边超过 maxDim 时等比缩小并原地覆盖，返回是否发生缩放
func ShrinkImage(path string, maxDim int) (bool, error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return false, err
	}

	b := src.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return false, nil
	}

	width, height := maxDim, 0
	if b.Dy() > b.Dx() {
		width, height = 0, maxDim
	}
	dst := imaging.Resize(src, width, height, imaging.Lanczos)

	if err = imaging.Save(dst, path); err != nil {
		return false, err
	}
	return true, nil
}
