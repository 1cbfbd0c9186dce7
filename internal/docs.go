// package internal holds the middleware stack and its composition order.
//
// every layer wraps the next and owns exactly one request or response
// concern, going quiet when its field is absent. the canonical order is not
// negotiable though: the request-shaping layers (url, method, header and
// query synthesis) run first so that the layers below them always hold a
// complete, replayable request; output coercion sits above input coercion so
// the two body directions cannot see each other; and redirect following sits
// right above the transport but replays through the whole chain, so every
// hop negotiates compression and decodes its body like a fresh request.
//
// request values are copy-on-write throughout. a layer that rewrites
// anything clones first, which is what lets callers reuse one base request
// across calls and lets a composed handler serve concurrent callers without
// locks.
package internal
