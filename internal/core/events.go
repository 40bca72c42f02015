package core

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PrintEvent is the internal view of a single "print this image" notification.
// It is immutable once built and is consumed by exactly one job.
type PrintEvent struct {
	ID         string
	SourceURI  string
	Source     string
	ReceivedAt time.Time
}

// Notification is the payload accepted from every intake transport. FullPath is the
// storage object path sent by the upstream bucket notifier; URI may be used instead
// by producers that already know the absolute image address. Bucket fills the
// {bucket} placeholder of the configured base URL.
type Notification struct {
	FullPath string `json:"fullPath"`
	Bucket   string `json:"bucket,omitempty"`
	URI      string `json:"uri,omitempty"`
}

// BucketPlaceholder is replaced by Notification.Bucket in fetcher.base_url.
const BucketPlaceholder = "{bucket}"

func isAbsoluteHTTP(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// ParseNotification decodes a raw intake payload.
func ParseNotification(payload []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, fmt.Errorf("invalid notification payload: %w", err)
	}
	return &n, nil
}

// EventFromNotification transforms an intake notification into a PrintEvent. It acts
// as an anti-corruption layer: the payload must resolve to an absolute http(s) URL,
// either directly or by joining FullPath onto baseURL (with {bucket} filled in).
func EventFromNotification(n *Notification, baseURL, source string) (*PrintEvent, error) {
	if n == nil {
		return nil, fmt.Errorf("notification cannot be nil")
	}

	raw := strings.TrimSpace(n.URI)
	if raw == "" {
		raw = strings.TrimSpace(n.FullPath)
	}
	if raw == "" {
		return nil, fmt.Errorf("notification has neither uri nor fullPath")
	}

	if !isAbsoluteHTTP(raw) {
		base, err := BaseURLForBucket(baseURL, n.Bucket)
		if err != nil {
			return nil, err
		}
		baseURL = base
	}
	uri, err := ResolveSourceURI(raw, baseURL)
	if err != nil {
		return nil, err
	}

	return &PrintEvent{
		ID:         uuid.NewString(),
		SourceURI:  uri,
		Source:     source,
		ReceivedAt: time.Now().UTC(),
	}, nil
}

// ResolveSourceURI returns raw unchanged when it is already an absolute http(s) URL,
// otherwise it treats raw as an object path under baseURL. Each path segment is
// escaped literally, so ':' or '%' in an object name never changes its meaning.
func ResolveSourceURI(raw, baseURL string) (string, error) {
	if isAbsoluteHTTP(raw) {
		u, _ := url.Parse(raw)
		if u.Host == "" {
			return "", fmt.Errorf("source uri %q has no host", raw)
		}
		return u.String(), nil
	}

	if baseURL == "" {
		return "", fmt.Errorf("source %q is not an absolute URL and no base URL is configured", raw)
	}
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if !isAbsoluteHTTP(base.String()) || base.Host == "" {
		return "", fmt.Errorf("base URL %q must be an absolute http(s) URL", baseURL)
	}

	objectPath := strings.TrimLeft(raw, "/")
	if objectPath == "" {
		return "", fmt.Errorf("object path %q is empty", raw)
	}
	segments := strings.Split(objectPath, "/")
	for i, seg := range segments {
		if seg == "." || seg == ".." {
			return "", fmt.Errorf("object path %q must not contain %q segments", raw, seg)
		}
		segments[i] = url.PathEscape(seg)
	}
	return base.JoinPath(segments...).String(), nil
}

// BaseURLForBucket substitutes the {bucket} placeholder of baseURL. A base URL
// without the placeholder is returned unchanged.
func BaseURLForBucket(baseURL, bucket string) (string, error) {
	if !strings.Contains(baseURL, BucketPlaceholder) {
		return baseURL, nil
	}
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return "", fmt.Errorf("base URL %q needs a bucket but the notification has none", baseURL)
	}
	return strings.ReplaceAll(baseURL, BucketPlaceholder, url.PathEscape(bucket)), nil
}
