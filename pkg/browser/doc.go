// Package browser connects the web surfer to a browser process running in a
// separate container or host. It never launches a local browser: a remote
// connection URL is mandatory, and the URL scheme selects one of two
// transports.
//
// Transports:
//   - ws:// and wss:// URLs address a Playwright automation server. The
//     connector opens a persistent connection and requests a browser from
//     the server, forwarding the headless preference.
//   - http:// and https:// URLs address the remote debugging endpoint of an
//     already-running browser (CDP). The browser's mode is fixed by whoever
//     started it, so a conflicting headless request is logged and ignored.
//
// Any other scheme, or a missing URL, is a ConfigurationError raised before
// any network I/O. Connection failures are ConnectionErrors and are
// terminal for the session: there is no retry and no local fallback.
//
// Each Session owns exactly one browser handle (browser, context, page) for
// its lifetime and moves through a fixed set of states:
//
//	Unconfigured -> Connecting -> Connected -> (InUse)* -> Closed
//	                Connecting -> Failed (terminal)
//
// Before the first navigation the session installs the page initialization
// script (element labeling used by the surfer's observations); the script
// must exist on disk or session creation fails with a MissingAssetError.
package browser
