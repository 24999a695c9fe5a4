// Package loader parses skin markup into node trees and builds object trees from them
package loader

import (
	"errors"
	"regexp"

	"github.com/lixenwraith/skinvm/logger"
	"github.com/lixenwraith/skinvm/skin"
)

var (
	// ErrEmptySkin is returned when markup holds no GUI elements
	ErrEmptySkin = errors.New("skin has no gui elements")
	// ErrUnknownAttribute is returned under PolicyError for unrecognized attributes
	ErrUnknownAttribute = errors.New("unknown attribute")
)

var (
	archiveItemRe = regexp.MustCompile(`^(https://)?archive.org/details/([^/]+)/?`)
	versionRe     = regexp.MustCompile(`^\d+(\.\d+)*$`)
)

// Document is a parsed skin file
type Document struct {
	Root    *skin.Node
	Info    *SkinInfo
	Skipped []string // Non-GUI elements dropped at parse time, in document order
}

// SkinInfo is the <skininfo> metadata block
type SkinInfo struct {
	Version    string `xml:"version" yaml:"version"`
	Name       string `xml:"name" yaml:"name"`
	Comment    string `xml:"comment" yaml:"comment"`
	Author     string `xml:"author" yaml:"author"`
	Email      string `xml:"email" yaml:"email"`
	Homepage   string `xml:"homepage" yaml:"homepage"`
	Screenshot string `xml:"screenshot" yaml:"screenshot"`
}

// normalize drops a malformed version
func (s *SkinInfo) normalize() {
	if s.Version != "" && !versionRe.MatchString(s.Version) {
		logger.Log.WithField("version", s.Version).Warn("ignoring malformed skin version")
		s.Version = ""
	}
}

// ArchiveItem returns the archive.org item identifier named by the homepage,
// or the homepage itself when it is not an archive.org details link
func (s *SkinInfo) ArchiveItem() string {
	if m := archiveItemRe.FindStringSubmatch(s.Homepage); m != nil {
		return m[2]
	}
	return s.Homepage
}
