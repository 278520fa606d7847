package svg

import (
	"github.com/beevik/etree"

	"github.com/goliatone/go-cardgen/internal/svgdoc"
	"github.com/goliatone/go-cardgen/pkg/model"
)

// bindImage populates an image placeholder. Previously injected images are
// always removed first so re-rendering the same card stays idempotent. With
// no value the placeholder rect is left exactly as the template drew it.
func bindImage(el *etree.Element, value *model.ImageValue) {
	removeGenerated(el)

	rect := findRect(el)
	if value == nil || rect == nil {
		return
	}

	x, _ := svgdoc.AttrFloat(rect, "x")
	y, _ := svgdoc.AttrFloat(rect, "y")
	w, _ := svgdoc.AttrFloat(rect, "width")
	h, _ := svgdoc.AttrFloat(rect, "height")

	scale := value.Scale
	if scale <= 0 {
		scale = 1
	}
	drawW := w * scale
	drawH := h * scale
	drawX := x + (w-drawW)/2 + value.OffsetX*w
	drawY := y + (h-drawH)/2 + value.OffsetY*h

	img := rect.Parent().CreateElement("image")
	img.CreateAttr("href", value.Src)
	img.CreateAttr("x", formatNumber(drawX))
	img.CreateAttr("y", formatNumber(drawY))
	img.CreateAttr("width", formatNumber(drawW))
	img.CreateAttr("height", formatNumber(drawH))
	// cover-fit: crop rather than letterbox inside the slot
	img.CreateAttr("preserveAspectRatio", "xMidYMid slice")
	img.CreateAttr(generatedAttr, "true")

	// the rect no longer paints beneath the photo
	rect.CreateAttr("fill", "none")
}

// findRect locates the geometry rect of an image slot: the element itself
// when it is a rect, otherwise the first rect anywhere beneath it.
func findRect(el *etree.Element) *etree.Element {
	if el.Tag == "rect" {
		return el
	}
	return svgdoc.FirstChildElement(el, "rect", true)
}

// removeGenerated strips every injected <image> beneath (and including
// siblings of) the field element.
func removeGenerated(el *etree.Element) {
	var generated []*etree.Element
	collectGenerated(el, &generated)
	for _, img := range generated {
		if parent := img.Parent(); parent != nil {
			parent.RemoveChild(img)
		}
	}
}

func collectGenerated(el *etree.Element, out *[]*etree.Element) {
	for _, child := range el.ChildElements() {
		if child.Tag == "image" && child.SelectAttrValue(generatedAttr, "") == "true" {
			*out = append(*out, child)
			continue
		}
		collectGenerated(child, out)
	}
}
