package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli"

	"github.com/lixenwraith/skinvm/loader"
	"github.com/lixenwraith/skinvm/registry"
	"github.com/lixenwraith/skinvm/render"
	"github.com/lixenwraith/skinvm/skin"
)

var (
	idStyle     = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

func dumpCommand(c *cli.Context) error {
	path, err := getFilename(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	rec := render.NewRecorder()
	doc, tree, _, err := loader.LoadFile(path, registry.NewDefault(), newDeps(cfg, rec), policy)
	if err != nil {
		return err
	}
	defer tree.Dispose()
	if err := tree.Draw(); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, formatDump(doc.Info, tree, rec))
	return nil
}

// formatDump renders skin metadata and one line per object with its resolved box
func formatDump(info *loader.SkinInfo, tree *skin.Tree, rec *render.Recorder) string {
	var b strings.Builder
	if info != nil {
		lines := []string{info.Name}
		if info.Version != "" {
			lines = append(lines, "version "+info.Version)
		}
		if info.Author != "" {
			lines = append(lines, "by "+info.Author)
		}
		if item := info.ArchiveItem(); item != "" {
			lines = append(lines, "archive "+item)
		}
		b.WriteString(headerStyle.Render(strings.Join(lines, "\n")))
		b.WriteByte('\n')
	}
	writeObject(&b, tree.Root(), rec, 0)
	return strings.TrimRight(b.String(), "\n")
}

func writeObject(b *strings.Builder, o skin.Object, rec *render.Recorder, depth int) {
	g := o.Base()
	c := render.KindColor(o.Kind())
	kind := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))).
		Render(o.Kind())

	box := rec.BoundingBox(g.Handle())
	line := strings.Repeat("  ", depth) + kind
	if id := g.ID(); id != "" {
		line += " " + idStyle.Render("#"+id)
	}
	line += " " + dimStyle.Render(fmt.Sprintf("(%d,%d %dx%d)", box.Left, box.Top, box.Width, box.Height))
	if !g.Visible() {
		line += " " + dimStyle.Render("hidden")
	}
	b.WriteString(line)
	b.WriteByte('\n')
	for _, child := range g.Children() {
		writeObject(b, child, rec, depth+1)
	}
}
