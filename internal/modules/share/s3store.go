package share

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/saanj-studio/anthology-core/internal/config"
)

// ObjectStore uploads generated share cards to an S3-compatible bucket so
// they can be served from a CDN instead of re-rendered per request. It
// signs requests itself (SigV4) to avoid pulling in a full SDK for a
// single PUT.
type ObjectStore struct {
	endpoint     *url.URL
	bucket       string
	region       string
	accessKey    string
	secretKey    string
	prefix       string
	customDomain string
	pathStyle    bool
	client       *http.Client
}

// NewObjectStore validates opts and builds a store. Call only when the
// share-card S3 option is enabled.
func NewObjectStore(opts config.ShareCardS3) (*ObjectStore, error) {
	bucket := strings.TrimSpace(opts.Bucket)
	region := strings.TrimSpace(opts.Region)
	accessKey := strings.TrimSpace(opts.AccessKeyID)
	secretKey := strings.TrimSpace(opts.SecretAccessKey)
	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("share: incomplete s3 config, need bucket/region/access_key_id/secret_access_key")
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", region)
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	parsed, err := url.Parse(strings.TrimSuffix(endpoint, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("share: invalid s3 endpoint %q", endpoint)
	}

	// Non-AWS endpoints rarely support virtual-hosted buckets.
	pathStyle := opts.PathStyleAccess || opts.Endpoint != ""

	return &ObjectStore{
		endpoint:     parsed,
		bucket:       bucket,
		region:       region,
		accessKey:    accessKey,
		secretKey:    secretKey,
		prefix:       strings.Trim(strings.TrimSpace(opts.Prefix), "/"),
		customDomain: strings.TrimRight(strings.TrimSpace(opts.CustomDomain), "/"),
		pathStyle:    pathStyle,
		client:       &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// StoreCard uploads a generated card under the configured prefix and
// returns its public URL.
func (s *ObjectStore) StoreCard(ctx context.Context, file *File) (string, error) {
	if file == nil || len(file.Data) == 0 {
		return "", fmt.Errorf("share: nothing to store")
	}
	key := file.Name
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	return s.put(ctx, key, file.Data, file.MIME)
}

func (s *ObjectStore) put(ctx context.Context, objectKey string, payload []byte, contentType string) (string, error) {
	key := cleanKey(objectKey)
	if key == "" {
		return "", fmt.Errorf("share: invalid object key %q", objectKey)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	requestURL, canonicalURI, host := s.target(key)

	now := time.Now().UTC()
	amzDate := now.Format("20060102T150405Z")
	dateStamp := now.Format("20060102")
	payloadHash := hexSHA256(payload)

	headers := map[string]string{
		"content-length":       strconv.Itoa(len(payload)),
		"content-type":         contentType,
		"host":                 host,
		"x-amz-content-sha256": payloadHash,
		"x-amz-date":           amzDate,
	}
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	var canonicalHeaders strings.Builder
	for _, name := range names {
		canonicalHeaders.WriteString(name + ":" + headers[name] + "\n")
	}
	signedHeaders := strings.Join(names, ";")

	canonicalRequest := strings.Join([]string{
		http.MethodPut,
		canonicalURI,
		"",
		canonicalHeaders.String(),
		signedHeaders,
		payloadHash,
	}, "\n")

	scope := dateStamp + "/" + s.region + "/s3/aws4_request"
	stringToSign := strings.Join([]string{
		"AWS4-HMAC-SHA256",
		amzDate,
		scope,
		hexSHA256([]byte(canonicalRequest)),
	}, "\n")

	signature := hex.EncodeToString(hmacChain(
		[]byte("AWS4"+s.secretKey), dateStamp, s.region, "s3", "aws4_request", stringToSign))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, requestURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Host = host
	for _, name := range names {
		req.Header.Set(name, headers[name])
	}
	req.Header.Set("Authorization",
		"AWS4-HMAC-SHA256 Credential="+s.accessKey+"/"+scope+
			", SignedHeaders="+signedHeaders+
			", Signature="+signature)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("share: s3 upload failed, status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if s.customDomain != "" {
		return s.customDomain + "/" + key, nil
	}
	return requestURL, nil
}

func (s *ObjectStore) target(key string) (requestURL, canonicalURI, host string) {
	escaped := escapeKey(key)

	if s.pathStyle {
		canonicalURI = "/" + s.bucket + "/" + escaped
		host = s.endpoint.Host
	} else {
		canonicalURI = "/" + escaped
		host = s.bucket + "." + s.endpoint.Host
	}
	return s.endpoint.Scheme + "://" + host + canonicalURI, canonicalURI, host
}

func cleanKey(key string) string {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	key = strings.Trim(key, "/")
	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}
	return key
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func hexSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hmacChain folds each step into the running HMAC key, SigV4 style.
func hmacChain(key []byte, steps ...string) []byte {
	out := key
	for _, step := range steps {
		mac := hmac.New(sha256.New, out)
		mac.Write([]byte(step))
		out = mac.Sum(nil)
	}
	return out
}
