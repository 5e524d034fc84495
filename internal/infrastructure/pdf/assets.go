package pdf

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrAssetRejected el origen de un logo o fondo no está permitido.
var ErrAssetRejected = errors.New("pdf: origen de recurso no permitido")

// AssetLoader obtiene los bytes de un logo o fondo a partir de su origen.
type AssetLoader interface {
	Load(ctx context.Context, src string) ([]byte, error)
}

// HTTPAssetLoader descarga logos y fondos con el cliente de fiber. Acepta
// URLs http(s): con lista de hosts, solo esos hosts y sus subdominios; sin
// lista, cualquier host que no sea una dirección interna. Las rutas locales
// solo se leen dentro del directorio de recursos del operador.
type HTTPAssetLoader struct {
	timeout time.Duration
	hosts   []string
	dir     string
}

// AssetOption configura un HTTPAssetLoader.
type AssetOption func(*HTTPAssetLoader)

// WithAllowedHosts restringe las descargas a estos hosts.
func WithAllowedHosts(hosts ...string) AssetOption {
	return func(l *HTTPAssetLoader) {
		for _, h := range hosts {
			if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
				l.hosts = append(l.hosts, h)
			}
		}
	}
}

// WithAssetDir habilita rutas locales relativas a dir.
func WithAssetDir(dir string) AssetOption {
	return func(l *HTTPAssetLoader) { l.dir = dir }
}

// NewHTTPAssetLoader construye el loader; timeout <= 0 usa 5 segundos.
func NewHTTPAssetLoader(timeout time.Duration, opts ...AssetOption) *HTTPAssetLoader {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	l := &HTTPAssetLoader{timeout: timeout}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load implementa AssetLoader.
func (l *HTTPAssetLoader) Load(ctx context.Context, src string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := url.Parse(strings.TrimSpace(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrAssetRejected, src)
	}
	switch u.Scheme {
	case "http", "https":
		if err := l.checkHost(u.Hostname()); err != nil {
			return nil, err
		}
		return l.fetch(ctx, u.String())
	case "":
		return l.readLocal(u.Path)
	default:
		return nil, fmt.Errorf("%w: esquema %q", ErrAssetRejected, u.Scheme)
	}
}

func (l *HTTPAssetLoader) checkHost(host string) error {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" {
		return fmt.Errorf("%w: URL sin host", ErrAssetRejected)
	}
	if len(l.hosts) > 0 {
		for _, h := range l.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return nil
			}
		}
		return fmt.Errorf("%w: host %s fuera de la lista", ErrAssetRejected, host)
	}
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return fmt.Errorf("%w: host %s", ErrAssetRejected, host)
	}
	if ip := net.ParseIP(host); ip != nil && internalIP(ip) {
		return fmt.Errorf("%w: dirección interna %s", ErrAssetRejected, host)
	}
	return nil
}

func internalIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast()
}

func (l *HTTPAssetLoader) fetch(ctx context.Context, src string) ([]byte, error) {
	timeout := l.timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	status, body, errs := fiber.Get(src).Timeout(timeout).Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("pdf: descargar recurso %s: %w", src, errs[0])
	}
	if status != fiber.StatusOK {
		return nil, fmt.Errorf("pdf: descargar recurso %s: estado %d", src, status)
	}
	return body, nil
}

// readLocal solo rutas relativas que no salen del directorio de recursos;
// las absolutas se rechazan.
func (l *HTTPAssetLoader) readLocal(p string) ([]byte, error) {
	if l.dir == "" {
		return nil, fmt.Errorf("%w: ruta local %q", ErrAssetRejected, p)
	}
	rel := filepath.FromSlash(p)
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("%w: ruta %q fuera del directorio de recursos", ErrAssetRejected, p)
	}
	data, err := os.ReadFile(filepath.Join(l.dir, rel))
	if err != nil {
		return nil, fmt.Errorf("pdf: leer recurso %s: %w", p, err)
	}
	return data, nil
}
