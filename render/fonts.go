package render

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Probe glyph for coverage checks, the classic eight strokes character
// present in any practical Han font.
const cjkProbe = '永'

// Family names tried in order when a slide needs Han coverage and the
// configured face does not provide it.
var cjkPreferred = []string{
	"noto sans cjk", "noto serif cjk", "source han",
	"pingfang", "microsoft yahei", "msyh", "simsun", "simhei",
	"wenquanyi", "droid sans fallback",
	"malgun gothic", "yu gothic", "meiryo",
}

// Latin faces tried when a requested name matched nothing at all.
var latinPreferred = []string{
	"dejavu sans", "liberation sans", "noto sans",
	"arial", "helvetica", "segoe ui",
}

type fontInfo struct {
	path   string
	index  int // position inside a collection file
	family string
	full   string
	cjk    bool // name based guess, glyph probe is authoritative
}

type fontKey struct {
	path  string
	index int
}

type faceKey struct {
	path  string
	index int
	size  float64
}

// FontCache indexes font files from the given directories and hands out
// sized faces. Names from earlier directories win, so configured locations
// shadow system ones. Neither the cache nor the faces it returns are safe
// for concurrent use.
type FontCache struct {
	log   *zap.Logger
	infos []*fontInfo
	names map[string]*fontInfo
	fonts map[fontKey]*sfnt.Font
	faces map[faceKey]font.Face

	cjkFont *fontInfo
	cjkMiss bool
}

// NewFontCache scans dirs for TTF, OTF and collection files and indexes
// every face found by family and full name. Missing directories and broken
// font files are skipped.
func NewFontCache(log *zap.Logger, dirs ...string) *FontCache {
	c := &FontCache{
		log:   log,
		names: make(map[string]*fontInfo),
		fonts: make(map[fontKey]*sfnt.Font),
		faces: make(map[faceKey]font.Face),
	}
	start := time.Now()
	files := 0
	for _, dir := range dirs {
		files += c.scanDir(dir)
	}
	log.Debug("Finished scanning fonts",
		zap.Strings("dirs", dirs),
		zap.Int("files", files),
		zap.Int("names", len(c.names)),
		zap.Duration("elapsed", time.Since(start)))
	return c
}

// SystemFontDirs returns standard font locations for the current OS.
func SystemFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if len(windir) == 0 {
			windir = "C:\\Windows"
		}
		return []string{filepath.Join(windir, "Fonts")}
	case "darwin":
		return []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
			filepath.Join(os.Getenv("HOME"), "Library", "Fonts"),
		}
	default:
		return []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
			filepath.Join(os.Getenv("HOME"), ".fonts"),
			filepath.Join(os.Getenv("HOME"), ".local", "share", "fonts"),
		}
	}
}

func (c *FontCache) scanDir(dir string) int {
	if len(dir) == 0 {
		return 0
	}
	files := 0
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ttf", ".otf", ".ttc", ".otc":
			if c.scanFile(path) {
				files++
			}
		}
		return nil
	})
	return files
}

func (c *FontCache) scanFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil || !isFontData(data) {
		return false
	}
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return false
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var buf sfnt.Buffer
	for i := range coll.NumFonts() {
		f, err := coll.Font(i)
		if err != nil {
			continue
		}
		info := &fontInfo{path: path, index: i, family: base}
		if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil && len(name) > 0 {
			info.family = name
		}
		if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil {
			info.full = name
		}
		info.cjk = looksCJK(info.family + " " + info.full + " " + base)
		c.index(info, info.family, info.full, base)
	}
	return true
}

// index registers info under every usable lowercased name keeping the first
// registration.
func (c *FontCache) index(info *fontInfo, names ...string) {
	added := false
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if len(name) == 0 {
			continue
		}
		if _, ok := c.names[name]; ok {
			continue
		}
		c.names[name] = info
		added = true
	}
	if added {
		c.infos = append(c.infos, info)
	}
}

// The sniffing library does not know collection containers, those are
// recognized by their tag directly.
func isFontData(data []byte) bool {
	return filetype.IsFont(data) || bytes.HasPrefix(data, []byte("ttcf"))
}

func looksCJK(name string) bool {
	name = strings.ToLower(name)
	for _, kw := range []string{
		"cjk", "chinese", "japanese", "korean",
		"simhei", "simsun", "yahei", "kaiti", "fangsong", "heiti",
		"mingliu", "jhenghei", "pingfang",
		"hiragino", "gothic", "mincho", "meiryo",
		"malgun", "batang", "dotum", "gulim",
		"wenquanyi", "wqy",
	} {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// find resolves a face name to a scanned font, exact match first, then the
// first scanned font whose name contains or is contained in the query.
func (c *FontCache) find(name string) *fontInfo {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 0 {
		return nil
	}
	if info, ok := c.names[name]; ok {
		return info
	}
	for _, info := range c.infos {
		for _, known := range []string{strings.ToLower(info.family), strings.ToLower(info.full)} {
			if len(known) == 0 {
				continue
			}
			if strings.Contains(known, name) || strings.Contains(name, known) {
				return info
			}
		}
	}
	return nil
}

// Face returns a sized face for the named font or nil when the name matches
// nothing.
func (c *FontCache) Face(name string, size float64) font.Face {
	info := c.find(name)
	if info == nil {
		return nil
	}
	return c.loadFace(info, size)
}

// CJKFace returns a face able to draw Han text. Well known CJK family names
// are tried first, then every scanned font is probed for actual glyph
// coverage. Returns nil when the system has no usable font, the decision is
// cached either way.
func (c *FontCache) CJKFace(size float64) font.Face {
	if c.cjkMiss {
		return nil
	}
	if c.cjkFont != nil {
		return c.loadFace(c.cjkFont, size)
	}
	for _, name := range cjkPreferred {
		if info := c.find(name); info != nil && c.hasGlyph(info, cjkProbe) {
			c.cjkFont = info
			return c.loadFace(info, size)
		}
	}
	for _, info := range c.infos {
		if info.cjk && c.hasGlyph(info, cjkProbe) {
			c.cjkFont = info
			return c.loadFace(info, size)
		}
	}
	for _, info := range c.infos {
		if c.hasGlyph(info, cjkProbe) {
			c.cjkFont = info
			return c.loadFace(info, size)
		}
	}
	c.cjkMiss = true
	c.log.Warn("No CJK capable font found, Han text will render as boxes")
	return nil
}

// FallbackFace returns any usable Latin face, preferring common UI fonts.
func (c *FontCache) FallbackFace(size float64) font.Face {
	for _, name := range latinPreferred {
		if info := c.find(name); info != nil {
			if face := c.loadFace(info, size); face != nil {
				return face
			}
		}
	}
	for _, info := range c.infos {
		if face := c.loadFace(info, size); face != nil {
			return face
		}
	}
	return nil
}

func (c *FontCache) loadFace(info *fontInfo, size float64) font.Face {
	if size <= 0 {
		size = 12
	}
	fk := faceKey{path: info.path, index: info.index, size: size}
	if face, ok := c.faces[fk]; ok {
		return face
	}
	f := c.loadFont(info)
	if f == nil {
		return nil
	}
	// at 72 DPI point size equals pixel size
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		c.log.Warn("Unable to create font face", zap.String("path", info.path), zap.Error(err))
		return nil
	}
	c.faces[fk] = face
	return face
}

func (c *FontCache) loadFont(info *fontInfo) *sfnt.Font {
	fk := fontKey{path: info.path, index: info.index}
	if f, ok := c.fonts[fk]; ok {
		return f
	}
	data, err := os.ReadFile(info.path)
	if err != nil {
		c.log.Warn("Unable to read font file", zap.String("path", info.path), zap.Error(err))
		return nil
	}
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		c.log.Warn("Unable to parse font file", zap.String("path", info.path), zap.Error(err))
		return nil
	}
	f, err := coll.Font(info.index)
	if err != nil {
		c.log.Warn("Unable to parse font file",
			zap.String("path", info.path), zap.Int("index", info.index), zap.Error(err))
		return nil
	}
	c.fonts[fk] = f
	return f
}

func (c *FontCache) hasGlyph(info *fontInfo, r rune) bool {
	f := c.loadFont(info)
	if f == nil {
		return false
	}
	var buf sfnt.Buffer
	x, err := f.GlyphIndex(&buf, r)
	return err == nil && x != 0
}
