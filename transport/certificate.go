package transport

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"net"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const (
	certificateHeader = "-----BEGIN CERTIFICATE-----"
	certificateFooter = "-----END CERTIFICATE-----"
)

// FetchLeafCertificate dials the host of rawURL, completes a TLS handshake
// and returns the DER bytes of the peer's leaf certificate. No HTTP request
// is sent.
func (client *TLSClient) FetchLeafCertificate(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid url %s", rawURL)
	}
	if !strings.EqualFold(u.Scheme, "https") || u.Hostname() == "" {
		return nil, errors.Errorf("not an https url: %s", rawURL)
	}
	port := u.Port()
	if port == "" {
		port = "443"
	}

	ctx, cancel := context.WithDeadline(ctx, client.clock.Now().Add(client.timeout))
	defer cancel()

	cfg := client.tlsConfig.Clone()
	cfg.ServerName = u.Hostname()
	dialer := &tls.Dialer{Config: cfg}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(u.Hostname(), port))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", u.Host)
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return nil, errors.Errorf("%s presented no certificate", u.Host)
	}
	return state.PeerCertificates[0].Raw, nil
}

// CertificatePEM frames der as a certificate block with no line breaks.
func CertificatePEM(der []byte) string {
	return certificateHeader + base64.StdEncoding.EncodeToString(der) + certificateFooter
}
