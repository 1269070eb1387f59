package sink

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/treemap/pkg/render/treemap"
	"github.com/matzehuels/treemap/pkg/render/treemap/tooltip"
)

const pageCSS = `
    body { font-family: sans-serif; margin: 0; padding: 20px; }
    #treemap-container { display: flex; flex-direction: column; align-items: center; }
    #title { margin-bottom: 0; }
    #description { margin-top: 8px; }
    #tooltip {
      position: absolute;
      margin: 0;
      padding: 6px 8px;
      background: rgba(255, 255, 255, 0.95);
      border: 1px solid #333;
      border-radius: 4px;
      font-size: 12px;
      pointer-events: none;
    }
    .tooltip--hidden { display: none; }`

// tooltipJS mirrors the tooltip Controller: enter shows with content,
// move repositions, leave hides.
const tooltipJS = `
    (function () {
      const tip = document.getElementById('tooltip');
      const fill = (f, args) => f.split('%s').map((p, i) => p + (i < args.length ? args[i] : '')).join('');
      document.querySelectorAll('#tree-map .tile-group').forEach(g => {
        const tile = g.querySelector('.tile');
        g.addEventListener('mouseenter', e => {
          const d = tile.dataset;
          tip.textContent = fill(TOOLTIP.format, [d.name, d.category, d.value]);
          tip.setAttribute('data-value', d.value);
          tip.style.left = (e.pageX + TOOLTIP.offset) + 'px';
          tip.style.top = (e.pageY + TOOLTIP.offset) + 'px';
          tip.classList.remove('tooltip--hidden');
        });
        g.addEventListener('mousemove', e => {
          tip.style.left = (e.pageX + TOOLTIP.offset) + 'px';
          tip.style.top = (e.pageY + TOOLTIP.offset) + 'px';
        });
        g.addEventListener('mouseleave', () => {
          tip.classList.add('tooltip--hidden');
          tip.removeAttribute('data-value');
        });
      });
    })();`

// RenderHTML renders d as a complete page. Inside #treemap-container it
// emits the title, the description, the hidden tooltip, the treemap
// surface and the legend surface, in that order.
func RenderHTML(d *treemap.Document) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	buf.WriteString("  <meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(d.Title))
	fmt.Fprintf(&buf, "  <style>%s\n    %s\n  </style>\n", pageCSS, treemapCSS)
	buf.WriteString("</head>\n")
	fmt.Fprintf(&buf, "<body data-render-id=\"%s\">\n", escapeXML(d.RenderID))
	buf.WriteString("<div id=\"treemap-container\">\n")

	fmt.Fprintf(&buf, "  <h2 id=\"title\">%s</h2>\n", escapeXML(d.Title))
	fmt.Fprintf(&buf, "  <p id=\"description\">%s</p>\n", escapeXML(d.Description))
	buf.WriteString("  <pre id=\"tooltip\" class=\"tooltip--hidden\"></pre>\n")

	fmt.Fprintf(&buf, `  <svg id="tree-map" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%s" height="%s" style="overflow: visible">`+"\n",
		num(d.Width), num(d.Height))
	fmt.Fprintf(&buf, `    <g transform="translate(%s, %s)">`+"\n", num(d.Margin.Left), num(d.Margin.Top))
	writeTiles(&buf, d, false, "      ")
	buf.WriteString("    </g>\n  </svg>\n")

	fmt.Fprintf(&buf, `  <svg id="legend" xmlns="http://www.w3.org/2000/svg" width="%s" height="%s">`+"\n",
		num(d.Legend.Width), num(d.Legend.Height))
	writeLegendItems(&buf, d.Legend, "    ")
	buf.WriteString("  </svg>\n")

	buf.WriteString("</div>\n")
	writeTooltipScript(&buf, d.TooltipOffset)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}

func writeTooltipScript(buf *bytes.Buffer, offset float64) {
	format, _ := json.Marshal(tooltip.Format)
	buf.WriteString("<script>\n")
	fmt.Fprintf(buf, "    const TOOLTIP = { offset: %s, format: %s };", num(offset), format)
	fmt.Fprintf(buf, "%s\n</script>\n", tooltipJS)
}
