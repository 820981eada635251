package e2etest

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/cropsage/cropsage/internal/errors"
)

// unsafeCookieJar strips the Secure flag from stored cookies. The session
// manager marks its cookies Secure, but the test server speaks plain HTTP and
// a standard jar would silently drop them.
type unsafeCookieJar struct {
	jar *cookiejar.Jar
}

func newUnsafeCookieJar() (*unsafeCookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "new cookie jar")
	}
	return &unsafeCookieJar{jar: jar}, nil
}

func (u *unsafeCookieJar) SetCookies(url *url.URL, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		cookie.Secure = false
	}
	u.jar.SetCookies(url, cookies)
}

func (u *unsafeCookieJar) Cookies(url *url.URL) []*http.Cookie {
	return u.jar.Cookies(url)
}
