// Package anubis passes Anubis bot-protection challenges served in front of blog pages.
package anubis

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"repurpose/backend/internal/config"
	"repurpose/backend/internal/logger"
)

const (
	passPath     = "/.within.website/x/cmd/anubis/api/pass-challenge"
	cookiePrefix = "techaro.lol-anubis"
)

var (
	ErrRejected  = errors.New("anubis rejected the request")
	ErrNoCookie  = errors.New("no anubis cookie in pass response")
	challengeRe  = regexp.MustCompile(`<script id="anubis_challenge" type="application/json">([^<]+)</script>`)
	pageMarker   = []byte(`id="anubis_challenge"`)
	rejectMarker = []byte(`"anubis_challenge" type="application/json">null`)
)

type challenge struct {
	Rules struct {
		Algorithm  string `json:"algorithm"`
		Difficulty int    `json:"difficulty"`
	} `json:"rules"`
	Challenge struct {
		ID         string `json:"id"`
		RandomData string `json:"randomData"`
	} `json:"challenge"`
}

type answer struct {
	// param names the query parameter carrying value.
	param   string
	value   string
	nonce   int
	elapsed time.Duration
	pow     bool
}

// IsPage reports whether body is any Anubis page, solvable or not.
func IsPage(body []byte) bool {
	return bytes.Contains(body, pageMarker)
}

// IsChallenge reports whether body is a solvable challenge. Rejection pages carry a null challenge.
func IsChallenge(body []byte) bool {
	return IsPage(body) && !bytes.Contains(body, rejectMarker)
}

// Solver computes challenge answers and trades them for a pass cookie.
// Concurrent solves for one host wait for the first.
type Solver struct {
	client  *http.Client
	cookies *CookieCache

	mu      sync.Mutex
	pending map[string]chan struct{}
}

// NewSolver copies client with redirects disabled so the pass cookie can be read.
func NewSolver(client *http.Client, cookies *CookieCache) *Solver {
	c := *client
	c.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }
	if cookies == nil {
		cookies = NewCookieCache()
	}
	return &Solver{client: &c, cookies: cookies, pending: make(map[string]chan struct{})}
}

func (s *Solver) IsPage(body []byte) bool {
	return IsPage(body)
}

// CachedCookie returns a still valid pass cookie for host.
func (s *Solver) CachedCookie(host string) string {
	return s.cookies.Get(host)
}

// Solve answers the challenge in body for pageURL and returns the cookie header value.
func (s *Solver) Solve(ctx context.Context, body []byte, pageURL *url.URL, initial []*http.Cookie) (string, error) {
	if IsPage(body) && !IsChallenge(body) {
		return "", ErrRejected
	}
	host := pageURL.Host

	s.mu.Lock()
	if wait, ok := s.pending[host]; ok {
		s.mu.Unlock()
		select {
		case <-wait:
			if cookie := s.cookies.Get(host); cookie != "" {
				return cookie, nil
			}
			return "", fmt.Errorf("concurrent anubis solve for %s failed", host)
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	done := make(chan struct{})
	s.pending[host] = done
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.pending, host)
		s.mu.Unlock()
		close(done)
	}()

	ch, err := parseChallenge(body)
	if err != nil {
		return "", err
	}
	logger.Debug("anubis challenge detected", "module", "anubis", "action", "solve", "resource", "challenge", "result", "ok", "host", host, "algorithm", ch.Rules.Algorithm, "difficulty", ch.Rules.Difficulty)

	ans, err := solve(ctx, ch)
	if err != nil {
		return "", fmt.Errorf("solve anubis challenge: %w", err)
	}

	cookie, expiresAt, err := s.pass(ctx, pageURL, ch, ans, initial)
	if err != nil {
		logger.Warn("anubis pass failed", "module", "anubis", "action", "submit", "resource", "challenge", "result", "failed", "host", host, "error", err)
		return "", err
	}
	s.cookies.Set(host, cookie, expiresAt)
	logger.Info("anubis challenge passed", "module", "anubis", "action", "submit", "resource", "challenge", "result", "ok", "host", host)
	return cookie, nil
}

func parseChallenge(body []byte) (*challenge, error) {
	m := challengeRe.FindSubmatch(body)
	if len(m) < 2 {
		return nil, errors.New("anubis challenge JSON not found")
	}
	var ch challenge
	if err := json.Unmarshal(m[1], &ch); err != nil {
		return nil, fmt.Errorf("decode anubis challenge: %w", err)
	}
	if ch.Challenge.RandomData == "" {
		return nil, errors.New("anubis challenge has no random data")
	}
	return &ch, nil
}

// solve dispatches on the algorithm. Unknown algorithms are treated as preact.
//
//	preact:      sha256(randomData), after difficulty*80ms
//	metarefresh: randomData itself, after difficulty*800ms
//	fast, slow:  sha256(randomData+nonce) with difficulty leading zeros
func solve(ctx context.Context, ch *challenge) (answer, error) {
	data := ch.Challenge.RandomData
	difficulty := ch.Rules.Difficulty

	switch ch.Rules.Algorithm {
	case "fast", "slow":
		return proofOfWork(ctx, data, difficulty)
	case "metarefresh":
		return delayed(ctx, answer{param: "challenge", value: data}, time.Duration(difficulty)*800*time.Millisecond+100*time.Millisecond)
	default:
		sum := sha256.Sum256([]byte(data))
		return delayed(ctx, answer{param: "result", value: hex.EncodeToString(sum[:])}, time.Duration(difficulty)*80*time.Millisecond+50*time.Millisecond)
	}
}

func delayed(ctx context.Context, a answer, wait time.Duration) (answer, error) {
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-t.C:
		return a, nil
	case <-ctx.Done():
		return answer{}, ctx.Err()
	}
}

func proofOfWork(ctx context.Context, data string, difficulty int) (answer, error) {
	start := time.Now()
	prefix := strings.Repeat("0", difficulty)

	for nonce := 0; ; nonce++ {
		if nonce%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return answer{}, err
			}
		}
		sum := sha256.Sum256([]byte(data + strconv.Itoa(nonce)))
		hash := hex.EncodeToString(sum[:])
		if strings.HasPrefix(hash, prefix) {
			return answer{param: "response", value: hash, nonce: nonce, elapsed: time.Since(start), pow: true}, nil
		}
	}
}

func (s *Solver) pass(ctx context.Context, pageURL *url.URL, ch *challenge, ans answer, initial []*http.Cookie) (string, time.Time, error) {
	q := url.Values{}
	q.Set("id", ch.Challenge.ID)
	q.Set("redir", pageURL.RequestURI())
	q.Set(ans.param, ans.value)
	if ans.pow {
		q.Set("nonce", strconv.Itoa(ans.nonce))
		q.Set("elapsedTime", strconv.FormatInt(ans.elapsed.Milliseconds(), 10))
	}
	passURL := url.URL{Scheme: pageURL.Scheme, Host: pageURL.Host, Path: passPath, RawQuery: q.Encode()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, passURL.String(), nil)
	if err != nil {
		return "", time.Time{}, err
	}
	req.Header.Set("User-Agent", config.UserAgent)
	req.Header.Set("Accept", config.HTMLAccept)
	for _, c := range initial {
		req.AddCookie(c)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("submit anubis answer: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode != http.StatusFound && resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("anubis pass returned HTTP %d", resp.StatusCode)
	}

	var (
		parts     []string
		expiresAt = time.Now().Add(DefaultCookieTTL)
	)
	for _, c := range resp.Cookies() {
		if !strings.HasPrefix(c.Name, cookiePrefix) {
			continue
		}
		parts = append(parts, c.Name+"="+c.Value)
		if !c.Expires.IsZero() && c.Expires.Before(expiresAt) {
			expiresAt = c.Expires
		}
	}
	if len(parts) == 0 {
		return "", time.Time{}, ErrNoCookie
	}
	return strings.Join(parts, "; "), expiresAt, nil
}
