package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tbourn/turret-landing/internal/domain"
	"github.com/tbourn/turret-landing/internal/services"
)

func TestIndex_RendersCatalog(t *testing.T) {
	cat, set, con, docs := siteDeps()
	h := New(cat, set, con, docs, Options{CaptchaClientKey: "ysc1_client", MediaURL: "/media"})
	r := newSiteRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{
		"АРСЕНАЛ",
		"Автономность",
		"до 1500 м",
		"/document/7/download/",
		"pdf",
		"Android 12 AOSP",
		`data-sitekey="ysc1_client"`,
		"smartcaptcha.yandexcloud.net",
		`name="website"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("index missing %q", want)
		}
	}
}

func TestIndex_NoCaptchaWidgetWithoutKey(t *testing.T) {
	cat, set, con, docs := siteDeps()
	r := newSiteRouter(New(cat, set, con, docs, Options{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if strings.Contains(w.Body.String(), "captcha-container") {
		t.Fatalf("captcha widget rendered without a client key")
	}
}

func TestIndex_CatalogError(t *testing.T) {
	_, set, con, docs := siteDeps()
	cat := stubCatalog{landing: func(context.Context) (*services.LandingPage, error) { return nil, errBoom }}
	r := newSiteRouter(New(cat, set, con, docs, Options{}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Не удалось загрузить страницу") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestSimplePages(t *testing.T) {
	cat, set, con, docs := siteDeps()
	r := newSiteRouter(New(cat, set, con, docs, Options{}))

	cases := []struct {
		path string
		want string
	}{
		{"/privacy/", "персональных данных"},
		{"/cookies/", "cookie"},
		{"/contact/thanks/", "Ваша заявка отправлена"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status=%d", w.Code)
			}
			body := w.Body.String()
			if !strings.Contains(body, tc.want) {
				t.Fatalf("%s missing %q", tc.path, tc.want)
			}
			if !strings.Contains(body, "npo.arsenal.info@mail.ru") {
				t.Fatalf("%s footer lacks contact email", tc.path)
			}
		})
	}
}

func TestSimplePages_SettingsError(t *testing.T) {
	cat, _, con, docs := siteDeps()
	set := stubSettings{get: func(context.Context) (*domain.SiteSettings, error) { return nil, errBoom }}
	r := newSiteRouter(New(cat, set, con, docs, Options{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/privacy/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
}
