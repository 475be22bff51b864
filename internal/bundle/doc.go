// Package bundle produces the self-contained event browser artifacts.
//
// An embed run rewrites the viewer script so it reads events from a JSON
// data island instead of fetching events.json over HTTP, then renders a
// single index.html carrying the stylesheet, the dataset and the rewritten
// script. The resulting page works over the file:// protocol with no server.
package bundle
