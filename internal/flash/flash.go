// Package flash carries a one-time notice across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const CookieName = "medisecure_flash"

// Kind 決定畫面上的樣式
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func Success(msg string) Notice { return Notice{Kind: KindSuccess, Message: msg} }
func Info(msg string) Notice    { return Notice{Kind: KindInfo, Message: msg} }
func Error(msg string) Notice   { return Notice{Kind: KindError, Message: msg} }

// Set stores the notice for the next rendered page. An empty message is ignored.
func Set(c echo.Context, n Notice) {
	n.Message = strings.TrimSpace(n.Message)
	if n.Message == "" {
		return
	}
	if n.Kind == "" {
		n.Kind = KindInfo
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	c.SetCookie(cookie(c, base64.RawURLEncoding.EncodeToString(payload), 0))
}

// Pop 讀取並清除 notice；cookie 損壞時同樣清除
func Pop(c echo.Context) (Notice, bool) {
	ck, err := c.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return Notice{}, false
	}
	c.SetCookie(cookie(c, "", -1))

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(ck.Value))
	if err != nil {
		return Notice{}, false
	}
	var n Notice
	if err := json.Unmarshal(raw, &n); err != nil || n.Message == "" {
		return Notice{}, false
	}
	return n, true
}

// Redirect sets the notice and answers 302 to path.
func Redirect(c echo.Context, path string, n Notice) error {
	Set(c, n)
	return c.Redirect(http.StatusFound, path)
}

func cookie(c echo.Context, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	}
}
