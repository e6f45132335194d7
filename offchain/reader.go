package offchain

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/husky-nft/nftgate/metrics"
	"github.com/husky-nft/nftgate/types"
)

const (
	schemeData    = "data:"
	schemeIpfs    = "ipfs://"
	schemeArweave = "ar://"

	metricsTarget = "metadata"

	// arweave.net and subdomain ipfs gateways answer with redirects
	maxRedirects = 5
)

var (
	ErrEmptyURI          = errors.New("metadata uri is empty")
	ErrUnsupportedScheme = errors.New("unsupported metadata uri scheme")
	ErrBadStatus         = errors.New("unexpected http status")
	ErrBadDataURI        = errors.New("malformed data uri")
	ErrTooManyRedirects  = errors.New("too many redirects")
)

// Reader fetches the raw bytes behind a metadata URI.
type Reader interface {
	Get(ctx context.Context, uri string) ([]byte, error)
}

// WebReader resolves http(s), ipfs, ar and data URIs.
type WebReader struct {
	client         *fiber.Client
	ipfsGateway    string
	arweaveGateway string
	timeout        time.Duration
}

var _ Reader = (*WebReader)(nil)

func NewWebReader(client *fiber.Client, ipfsGateway, arweaveGateway string, timeout time.Duration) *WebReader {
	return &WebReader{
		client:         client,
		ipfsGateway:    strings.TrimRight(ipfsGateway, "/"),
		arweaveGateway: strings.TrimRight(arweaveGateway, "/"),
		timeout:        timeout,
	}
}

func (r *WebReader) Get(ctx context.Context, uri string) ([]byte, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, ErrEmptyURI
	}

	target, err := r.Resolve(uri)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(target, schemeData) {
		return readDataURI(target)
	}
	return r.fetch(ctx, target)
}

// Resolve maps a metadata URI to the URL that is actually fetched.
// data: URIs are returned unchanged.
func (r *WebReader) Resolve(uri string) (string, error) {
	lower := strings.ToLower(uri)
	switch {
	case strings.HasPrefix(lower, schemeData):
		return uri, nil
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return uri, nil
	case strings.HasPrefix(lower, schemeIpfs):
		cid := uri[len(schemeIpfs):]
		// ipfs://ipfs/<cid> shows up in older mints
		cid = strings.TrimPrefix(cid, "ipfs/")
		return r.ipfsGateway + "/" + cid, nil
	case strings.HasPrefix(lower, schemeArweave):
		return r.arweaveGateway + "/" + uri[len(schemeArweave):], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, uri)
	}
}

func (r *WebReader) fetch(ctx context.Context, target string) ([]byte, error) {
	for hop := 0; ; hop++ {
		code, body, location, err := r.get(ctx, target)
		if err != nil {
			return nil, err
		}

		switch code {
		case fiber.StatusOK:
			return body, nil
		case fiber.StatusTooManyRequests:
			metrics.TrackRateLimit(metricsTarget)
			return nil, types.NewRateLimitError(hostOf(target))
		case fiber.StatusMovedPermanently, fiber.StatusFound, fiber.StatusSeeOther,
			fiber.StatusTemporaryRedirect, fiber.StatusPermanentRedirect:
			if hop >= maxRedirects {
				return nil, types.NewNetworkError(target, ErrTooManyRedirects)
			}
			next, err := followLocation(target, location)
			if err != nil {
				return nil, types.NewNetworkError(target, err)
			}
			target = next
		default:
			return nil, types.NewNetworkError(target, fmt.Errorf("%w: %d", ErrBadStatus, code))
		}
	}
}

// get performs a single GET without following redirects. The agent's own
// redirect handling is bypassed by Timeout, so hops are followed by fetch.
func (r *WebReader) get(ctx context.Context, target string) (int, []byte, string, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, "", err
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return 0, nil, "", types.NewTimeoutError("metadata fetch")
	}

	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)

	start := time.Now()
	code, body, errs := r.client.Get(target).
		Timeout(timeout).
		SetResponse(resp).
		Bytes()
	if err := errors.Join(errs...); err != nil {
		metrics.TrackExternalRequest(metricsTarget, "error", time.Since(start))
		return 0, nil, "", types.NewNetworkError(target, err)
	}
	metrics.TrackExternalStatus(metricsTarget, code, time.Since(start))

	return code, body, string(resp.Header.Peek(fiber.HeaderLocation)), nil
}

// followLocation resolves a Location header against the URL that returned it.
func followLocation(from, location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("%w: redirect without location", ErrBadStatus)
	}
	base, err := url.Parse(from)
	if err != nil {
		return "", err
	}
	next, err := base.Parse(location)
	if err != nil {
		return "", err
	}
	if next.Scheme != "http" && next.Scheme != "https" {
		return "", fmt.Errorf("%w: redirect to %s", ErrUnsupportedScheme, next.Scheme)
	}
	return next.String(), nil
}

// readDataURI decodes data:[<mediatype>][;base64],<data>.
func readDataURI(uri string) ([]byte, error) {
	parts := strings.SplitN(uri[len(schemeData):], ",", 2)
	if len(parts) < 2 || len(parts[1]) == 0 {
		return nil, fmt.Errorf("%w: no data part", ErrBadDataURI)
	}

	if strings.HasSuffix(strings.ToLower(parts[0]), ";base64") {
		out, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadDataURI, err)
		}
		return out, nil
	}

	text, err := url.PathUnescape(parts[1])
	if err != nil {
		return []byte(parts[1]), nil
	}
	return []byte(text), nil
}

func hostOf(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return target
	}
	return u.Host
}
