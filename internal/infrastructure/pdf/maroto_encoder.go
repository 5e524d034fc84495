// Package pdf codifica el árbol de página del motor de documentos a PDF con
// Maroto v2.
//
// Cada rendering.Row se traduce a una fila Maroto con el mismo alto en mm;
// cada Col a una columna con el mismo span sobre una grilla de
// Document.GridSize columnas.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/phpdave11/gofpdf"
	"github.com/rs/zerolog"

	"github.com/jhoicas/docengine/internal/application/rendering"
	"github.com/jhoicas/docengine/internal/domain/doctemplate"
)

// ── Fuentes ───────────────────────────────────────────────────────────────────

const (
	baseFamily   = "helvetica"
	customFamily = "docfont"
)

// fontFiles archivos esperados en el directorio de fuentes, por estilo.
var fontFiles = map[fontstyle.Type]string{
	fontstyle.Normal:     "Regular.ttf",
	fontstyle.Bold:       "Bold.ttf",
	fontstyle.Italic:     "Italic.ttf",
	fontstyle.BoldItalic: "BoldItalic.ttf",
}

// ── Encoder ───────────────────────────────────────────────────────────────────

// MarotoEncoder implementa rendering.Encoder usando Maroto v2.
type MarotoEncoder struct {
	assets AssetLoader
	fonts  []*entity.CustomFont
	family string
	log    zerolog.Logger
}

// Option configura el encoder.
type Option func(*MarotoEncoder)

// WithAssetLoader reemplaza el loader de logos y fondos.
func WithAssetLoader(l AssetLoader) Option {
	return func(e *MarotoEncoder) { e.assets = l }
}

// WithLogger asigna el logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *MarotoEncoder) { e.log = log }
}

// WithFontDir carga una familia TTF con glifos turcos desde dir. Sin los
// cuatro estilos se mantiene la fuente base.
func WithFontDir(dir string) Option {
	return func(e *MarotoEncoder) {
		if dir == "" {
			return
		}
		repo := repository.New()
		for style, file := range fontFiles {
			path := filepath.Join(dir, file)
			if _, err := os.Stat(path); err != nil {
				e.log.Warn().Str("font", path).Msg("fuente no encontrada; se usa helvetica")
				return
			}
			repo = repo.AddUTF8Font(customFamily, style, path)
		}
		fonts, err := repo.Load()
		if err != nil {
			e.log.Warn().Err(err).Str("dir", dir).Msg("no se pudieron cargar las fuentes; se usa helvetica")
			return
		}
		e.fonts = fonts
		e.family = customFamily
	}
}

// pdfDateLayout formato de las fechas D: del diccionario Info.
const pdfDateLayout = "20060102150405"

var sortCatalogs sync.Once

// NewMarotoEncoder construye el encoder. Activa el orden estable de los
// catálogos de fuentes e imágenes de gofpdf (ajuste global del paquete): sin
// él dos renders iguales difieren en el orden de los objetos.
func NewMarotoEncoder(opts ...Option) *MarotoEncoder {
	sortCatalogs.Do(func() { gofpdf.SetDefaultCatalogSort(true) })
	e := &MarotoEncoder{
		assets: NewHTTPAssetLoader(0),
		family: baseFamily,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode genera el PDF y devuelve sus bytes.
func (e *MarotoEncoder) Encode(ctx context.Context, doc rendering.Document) ([]byte, error) {
	b := config.NewBuilder().
		WithPageSize(pageSize(doc.Page.Size)).
		WithLeftMargin(doc.Page.Padding.Left).WithRightMargin(doc.Page.Padding.Right).
		WithTopMargin(doc.Page.Padding.Top).WithBottomMargin(doc.Page.Padding.Bottom).
		WithMaxGridSize(gridSize(doc.GridSize)).
		WithDefaultFont(&props.Font{Family: e.family, Size: doc.Page.FontSize}).
		WithTitle(doc.Title, true).
		WithAuthor(doc.Author, true).
		WithCreator("docengine", true)
	if !doc.CreatedAt.IsZero() {
		b = b.WithCreationDate(doc.CreatedAt)
	}
	if len(e.fonts) > 0 {
		b = b.WithCustomFonts(e.fonts)
	}
	if doc.Page.Background != "" {
		if data, ext, ok := e.loadImage(ctx, doc.Page.Background); ok {
			b = b.WithBackgroundImage(data, ext)
		}
	}

	m := maroto.New(b.Build())
	for _, r := range doc.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m.AddRows(e.row(ctx, r, doc.Page.FontSize))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	data := out.GetBytes()
	if !doc.CreatedAt.IsZero() {
		stampModDate(data, doc.CreatedAt)
	}
	return data, nil
}

var modDateKey = []byte("/ModDate (D:")

// stampModDate fija /ModDate en t. La librería solo expone la fecha de
// creación y escribe la de modificación con el reloj. El valor tiene ancho
// fijo, así que se reemplaza en sitio sin mover la tabla xref.
func stampModDate(data []byte, t time.Time) {
	i := bytes.Index(data, modDateKey)
	if i < 0 {
		return
	}
	stamp := t.Format(pdfDateLayout)
	start := i + len(modDateKey)
	if start+len(stamp) > len(data) {
		return
	}
	copy(data[start:start+len(stamp)], stamp)
}

// ── Traducción del árbol ──────────────────────────────────────────────────────

func (e *MarotoEncoder) row(ctx context.Context, r rendering.Row, fontSize float64) core.Row {
	cols := make([]core.Col, 0, len(r.Cols))
	for _, c := range r.Cols {
		mc := col.New(c.Span)
		if c.Fill != nil {
			mc = mc.WithStyle(&props.Cell{BackgroundColor: color(c.Fill)})
		}
		for _, it := range c.Items {
			if comp := e.component(ctx, it, fontSize); comp != nil {
				mc.Add(comp)
			}
		}
		cols = append(cols, mc)
	}
	return row.New(r.Height).Add(cols...)
}

func (e *MarotoEncoder) component(ctx context.Context, it rendering.Item, fontSize float64) core.Component {
	switch it.Kind {
	case rendering.ItemText:
		return text.New(it.Text, textProps(it.Style, e.family, fontSize))
	case rendering.ItemLine:
		return line.New(props.Line{Color: color(it.Style.Color), Thickness: 0.3})
	case rendering.ItemImage:
		data, ext, ok := e.loadImage(ctx, it.Source)
		if !ok {
			return nil
		}
		return image.NewFromBytes(data, ext, props.Rect{Center: true, Percent: 90})
	default:
		return nil
	}
}

// loadImage descarga la imagen; un fallo se registra y el elemento se omite.
func (e *MarotoEncoder) loadImage(ctx context.Context, src string) ([]byte, extension.Type, bool) {
	data, err := e.assets.Load(ctx, src)
	if err != nil {
		e.log.Warn().Err(err).Str("source", src).Msg("imagen no disponible; se omite")
		return nil, "", false
	}
	ext, ok := imageExtension(data)
	if !ok {
		e.log.Warn().Str("source", src).Msg("formato de imagen no soportado; se omite")
		return nil, "", false
	}
	return data, ext, true
}

// ── helpers ───────────────────────────────────────────────────────────────────

func textProps(st rendering.Style, family string, fontSize float64) props.Text {
	size := st.Size
	if size <= 0 {
		size = fontSize
	}
	return props.Text{
		Family: family,
		Style:  style(st),
		Size:   size,
		Align:  alignment(st.Align),
		Color:  color(st.Color),
		Top:    st.Top,
		Left:   1,
		Right:  1,
	}
}

func style(st rendering.Style) fontstyle.Type {
	switch {
	case st.Bold && st.Italic:
		return fontstyle.BoldItalic
	case st.Bold:
		return fontstyle.Bold
	case st.Italic:
		return fontstyle.Italic
	default:
		return fontstyle.Normal
	}
}

func alignment(a doctemplate.Alignment) align.Type {
	switch a {
	case doctemplate.AlignCenter:
		return align.Center
	case doctemplate.AlignRight:
		return align.Right
	default:
		return align.Left
	}
}

func color(c *rendering.Color) *props.Color {
	if c == nil {
		return nil
	}
	return &props.Color{Red: c.R, Green: c.G, Blue: c.B}
}

func pageSize(s doctemplate.PageSize) pagesize.Type {
	switch s {
	case doctemplate.PageA5:
		return pagesize.A5
	case doctemplate.PageLetter:
		return pagesize.Letter
	case doctemplate.PageLegal:
		return pagesize.Legal
	default:
		return pagesize.A4
	}
}

func gridSize(n int) int {
	if n <= 0 {
		return rendering.GridSize
	}
	return n
}

func imageExtension(data []byte) (extension.Type, bool) {
	switch http.DetectContentType(data) {
	case "image/png":
		return extension.Png, true
	case "image/jpeg":
		return extension.Jpg, true
	default:
		return "", false
	}
}
