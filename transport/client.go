/*
Copyright Zhigui.com. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package transport

import (
	"crypto/tls"
	"crypto/x509"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/pkg/errors"
)

var (
	// DefaultConnectionTimeout bounds dial plus TLS handshake of a certificate fetch.
	DefaultConnectionTimeout = time.Second * 10
)

// TLSOptions defines the security parameters used when fetching a remote
// certificate.
type TLSOptions struct {
	// Set of PEM-encoded X509 certificate authorities used to verify server
	// certificates. The system pool is used when empty.
	ServerRootCAs [][]byte
	// Skip verification of the server certificate chain and host name
	InsecureSkipVerify bool
	// Duration for which to block while establishing a connection
	Timeout time.Duration
	// Clock used to compute the connection deadline
	Clock clock.Clock
}

// TLSClient opens short-lived TLS connections to read peer certificates.
type TLSClient struct {
	// TLS configuration used for every connection
	tlsConfig *tls.Config
	// Duration for which to block while establishing a new connection
	timeout time.Duration
	clock   clock.Clock
}

// NewTLSClient creates a new TLSClient given the client configuration
func NewTLSClient(opts *TLSOptions) (*TLSClient, error) {
	if opts == nil {
		opts = &TLSOptions{}
	}
	tlsConfig, err := parseTLSOptionsForClient(opts)
	if err != nil {
		return nil, err
	}
	client := &TLSClient{
		tlsConfig: tlsConfig,
		timeout:   opts.Timeout,
		clock:     opts.Clock,
	}
	if client.timeout <= 0 {
		client.timeout = DefaultConnectionTimeout
	}
	if client.clock == nil {
		client.clock = clock.NewClock()
	}
	return client, nil
}

func parseTLSOptionsForClient(opts *TLSOptions) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: opts.InsecureSkipVerify,
	}
	if len(opts.ServerRootCAs) > 0 {
		certPool := x509.NewCertPool()
		for _, certBytes := range opts.ServerRootCAs {
			if ok := certPool.AppendCertsFromPEM(certBytes); !ok {
				return nil, errors.New("error adding server root certificate")
			}
		}
		tlsConfig.RootCAs = certPool
	}
	return tlsConfig, nil
}
