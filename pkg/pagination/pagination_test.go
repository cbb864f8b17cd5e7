package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(target string) Params {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec))
}

func TestFromContextDefaults(t *testing.T) {
	p := paramsFor("/beds")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("expected defaults, got %+v", p)
	}
}

func TestFromContextExplicit(t *testing.T) {
	p := paramsFor("/beds?limit=5&offset=10")
	if p.Limit != 5 || p.Offset != 10 {
		t.Errorf("expected limit=5 offset=10, got %+v", p)
	}
}

func TestFromContextClampsLimit(t *testing.T) {
	p := paramsFor("/beds?limit=5000")
	if p.Limit != MaxLimit {
		t.Errorf("expected limit clamped to %d, got %d", MaxLimit, p.Limit)
	}
}

func TestFromContextIgnoresMalformed(t *testing.T) {
	p := paramsFor("/beds?limit=abc&offset=-3")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("expected defaults for malformed input, got %+v", p)
	}
}
