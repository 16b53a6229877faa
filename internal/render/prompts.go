package render

import (
	"fmt"

	"github.com/felixgeelhaar/promptplay/internal/prompt"
)

// Prompts lists the available templates with their origin.
func (r *Renderer) Prompts(infos []prompt.Info) {
	r.header("Prompt Templates", ruleWidth)
	r.println()
	for _, info := range infos {
		src := r.styles.Muted.Render(string(info.Source))
		if info.Source == prompt.SourceDir {
			src = r.styles.Accent.Render(string(info.Source))
		}
		r.println("  ", r.styles.Label.Render(fmt.Sprintf("%-20s", info.Name)), " ",
			src, "  ", r.styles.Muted.Render(info.ShortDigest()), "  ", info.Path)
	}
	r.println()
}
