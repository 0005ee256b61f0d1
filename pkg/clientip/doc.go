// Package clientip resolves the originating client address of a request.
//
// Forwarding headers are honoured only when listed in Config.TrustedHeaders
// (TRUSTED_IP_HEADERS), e.g. "CF-Connecting-IP,X-Forwarded-For" behind
// Cloudflare and a load balancer. With no trusted headers the TCP peer
// address is used. The resolved address feeds the rate limiter keys and
// the client_ip log attribute.
package clientip
