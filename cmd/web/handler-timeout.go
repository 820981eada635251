package main

import (
	"net/http"
	"time"
)

const timeoutBody = `<html lang="en">
<head><title>Request timed out</title></head>
<body>
<h1>Request timed out</h1>
<p>The analysis took longer than expected. Model responses can be slow,
especially for the full report.</p>
<div>
    <button type="button">
        <span>Retry</span>
        <script>
          document.currentScript.parentElement.addEventListener('click', function () {
            location.reload();
          });
        </script>
    </button>
</div>
</body>
</html>
`

// timeoutHandler responds with a 503 Service Unavailable error when the handler does not meet the deadline.
func timeoutHandler(h http.Handler, defaultTimeout time.Duration) http.Handler {
	// Kept a little shorter than the server's read timeout so the timeout
	// response gets out before the server closes the connection.
	httpHandlerTimeout := defaultTimeout - 500*time.Millisecond //nolint:mnd // 500ms
	return http.TimeoutHandler(h, httpHandlerTimeout, timeoutBody)
}
