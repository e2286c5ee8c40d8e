package style

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
)

// DefaultFontDirs are scanned for system fonts when no directory is configured.
var DefaultFontDirs = []string{
	"/usr/share/fonts",
	"/usr/local/share/fonts",
	"/Library/Fonts",
	"/System/Library/Fonts",
	`C:\Windows\Fonts`,
}

// Catalog is the set of font faces available for plotting.
type Catalog struct {
	Faces font.Collection
}

// FaceName returns the display name of a face, e.g. "Liberation Serif".
func FaceName(f font.Face) string {
	return strings.TrimSpace(string(f.Font.Typeface) + " " + string(f.Font.Variant))
}

// Names returns the distinct face names in discovery order.
func (c Catalog) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range c.Faces {
		n := FaceName(f)
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

// FacesNamed returns every face whose name equals name.
func (c Catalog) FacesNamed(name string) font.Collection {
	var out font.Collection
	for _, f := range c.Faces {
		if FaceName(f) == name {
			out = append(out, f)
		}
	}
	return out
}

// DiscoverFonts returns the Liberation faces bundled with gonum/plot plus
// every TrueType/OpenType file found below dirs. Unreadable files and
// missing directories are skipped.
func DiscoverFonts(dirs []string, logger *zap.Logger) Catalog {
	cat := Catalog{Faces: liberation.Collection()}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".ttf", ".otf":
			default:
				return nil
			}
			face, err := loadFace(path)
			if err != nil {
				logger.Debug("skipping font", zap.String("path", path), zap.Error(err))
				return nil
			}
			cat.Faces = append(cat.Faces, face)
			return nil
		})
	}
	return cat
}

func loadFace(path string) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return font.Face{}, err
	}
	fnt, err := opentype.Parse(data)
	if err != nil {
		return font.Face{}, err
	}
	family, err := fnt.Name(nil, sfnt.NameIDFamily)
	if err != nil || family == "" {
		family = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	desc := font.Font{Typeface: font.Typeface(family)}
	if sub, err := fnt.Name(nil, sfnt.NameIDSubfamily); err == nil {
		sub = strings.ToLower(sub)
		if strings.Contains(sub, "bold") {
			desc.Weight = xfont.WeightBold
		}
		if strings.Contains(sub, "italic") || strings.Contains(sub, "oblique") {
			desc.Style = xfont.StyleItalic
		}
	}
	return font.Face{Font: desc, Face: fnt}, nil
}
