package httpserver

import (
	"net/http"
	"strings"
)

// view 是前端页面的一个版本
type view string

const (
	desktopView view = "desktop"
	mobileView  view = "mobile"

	viewCookie = "chess_view"
	viewMaxAge = 30 * 24 * 60 * 60
)

func (v view) prefix() string {
	if v == mobileView {
		return "/web_mobile/"
	}
	return "/web/"
}

// 查询参数和 cookie 里接受的写法
var viewAliases = map[string]view{
	"web":        desktopView,
	"desktop":    desktopView,
	"pc":         desktopView,
	"mobile":     mobileView,
	"m":          mobileView,
	"phone":      mobileView,
	"web_mobile": mobileView,
}

func parseView(s string) (view, bool) {
	v, ok := viewAliases[strings.ToLower(strings.TrimSpace(s))]
	return v, ok
}

// RegisterStaticRoutes serves the desktop board under /web/ and the mobile
// board under /web_mobile/. "/" redirects to one of them, picked by ?view=,
// then the view cookie, then the User-Agent. An explicit ?view= is
// remembered in the cookie.
func RegisterStaticRoutes(mux *http.ServeMux, desktopDir, mobileDir string) {
	if mobileDir == "" {
		mobileDir = desktopDir
	}
	for v, dir := range map[view]string{desktopView: desktopDir, mobileView: mobileDir} {
		mux.Handle(v.prefix(), http.StripPrefix(v.prefix(), http.FileServer(http.Dir(dir))))
	}
	mux.HandleFunc("/", redirectToView)
}

func redirectToView(w http.ResponseWriter, r *http.Request) {
	// /web 之类不带斜杠的路径由 ServeMux 自己重定向
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	v, explicit := parseView(r.URL.Query().Get("view"))
	switch {
	case explicit:
		http.SetCookie(w, &http.Cookie{
			Name:     viewCookie,
			Value:    string(v),
			Path:     "/",
			MaxAge:   viewMaxAge,
			SameSite: http.SameSiteLaxMode,
		})
	case cookieView(r) != "":
		v = cookieView(r)
	default:
		v = uaView(r.UserAgent())
	}

	w.Header().Set("Vary", "User-Agent, Cookie")
	http.Redirect(w, r, v.prefix(), http.StatusFound)
}

func cookieView(r *http.Request) view {
	c, err := r.Cookie(viewCookie)
	if err != nil {
		return ""
	}
	v, _ := parseView(c.Value)
	return v
}

var mobileUAMarkers = []string{"android", "iphone", "ipad", "ipod", "mobile", "windows phone"}

func uaView(ua string) view {
	ua = strings.ToLower(ua)
	for _, m := range mobileUAMarkers {
		if strings.Contains(ua, m) {
			return mobileView
		}
	}
	return desktopView
}
