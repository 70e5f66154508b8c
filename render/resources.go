package render

import (
	"bytes"
	_ "embed"
	"os"
	"sync"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"rfq/config"
	"rfq/utils/images"
)

//go:embed logo.svg
var defaultLogoSVG []byte

// logoTargetWidth is the raster width of the brand logo. The header band
// draws it at ~36mm, so 600px keeps it crisp on print.
const logoTargetWidth = 600

// staticResources is the only state outliving a single generation call:
// brand logo raster and an optional unicode font. Loaded once per process,
// read-only afterwards.
type staticResources struct {
	logoJPEG []byte // nil when logo loading failed - header degrades to text
	fontPath string // empty when no usable font override was configured
}

var (
	resOnce  sync.Once
	resCache *staticResources
)

// loadStaticResources initializes the process-wide resource cache. Every
// failure degrades silently per the error taxonomy: a report without a logo
// or with the default font is still a valid report.
func loadStaticResources(cfg *config.BrandingConfig, log *zap.Logger) *staticResources {
	resOnce.Do(func() {
		resCache = &staticResources{}

		svg := defaultLogoSVG
		if cfg.LogoPath != "" {
			data, err := os.ReadFile(cfg.LogoPath)
			switch {
			case err != nil:
				if log != nil {
					log.Warn("Unable to read logo override, using built-in", zap.String("path", cfg.LogoPath), zap.Error(err))
				}
			case Sniff(data) == ContentPNG || Sniff(data) == ContentJPEG:
				// raster override goes in as is, header scales it on draw
				if img, err := imaging.Decode(bytes.NewReader(data)); err == nil {
					if jdata, err := images.EncodeJPEG(img, 90); err == nil {
						resCache.logoJPEG = jdata
					}
				}
				svg = nil
			default:
				svg = data
			}
		}
		if svg != nil && resCache.logoJPEG == nil {
			if img, err := images.RasterizeSVGToImage(svg, logoTargetWidth, 0); err == nil {
				if data, err := images.EncodeJPEG(img, 90); err == nil {
					resCache.logoJPEG = data
				}
			} else if log != nil {
				log.Warn("Unable to rasterize logo, rendering without", zap.Error(err))
			}
		}

		if cfg.FontPath != "" {
			if _, err := os.Stat(cfg.FontPath); err == nil {
				resCache.fontPath = cfg.FontPath
			} else if log != nil {
				log.Warn("Unable to access font override, using built-in font", zap.String("path", cfg.FontPath), zap.Error(err))
			}
		}
	})
	return resCache
}
