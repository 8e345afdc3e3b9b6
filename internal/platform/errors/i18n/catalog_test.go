package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("en-US")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	if fallback := GetCatalog("fr-FR"); fallback != base {
		t.Fatalf("expected fallback to en-US catalog, got %s", fallback.Locale())
	}
	if empty := GetCatalog(""); empty != base {
		t.Fatal("expected empty locale to resolve to en-US")
	}
}

func TestGetCatalogNegotiatesSpanish(t *testing.T) {
	cat := GetCatalog("es")
	if cat.Locale() != "es-ES" {
		t.Fatalf("locale = %q, want es-ES", cat.Locale())
	}
	if got := cat.Format("COURSE_ID_INVALID", nil); got != "ID de curso inválido" {
		t.Fatalf("format = %q", got)
	}
}

func TestFormatRendersMetadata(t *testing.T) {
	got := GetCatalog("en-US").Format("CLASSROOM_ADMIN_REQUIRED", map[string]string{"action": "delete"})
	if got != "Only administrators can delete classrooms" {
		t.Fatalf("format = %q", got)
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "hello {{.Name}}",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello <no value>" {
		t.Fatal("expected template to render missing metadata")
	}
	if cat.Format("code", map[string]string{"Name": "Ada"}) != "hello Ada" {
		t.Fatal("expected cached template to render metadata")
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ if .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}

func TestRegisterCatalog(t *testing.T) {
	custom := NewCatalog("custom", map[Code]string{"code": "ok"})
	RegisterCatalog("custom", custom)
	if got := GetCatalog("custom"); got != custom {
		t.Fatal("expected registered catalog")
	}
}
