// Package certs loads extra CA certificates for talking to a gallery
// service behind a private or self-signed certificate.
package certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CertManager reads the certificate files in a directory.
type CertManager struct {
	certDir string
	now     func() time.Time
}

// NewCertManager creates a new CertManager for the given directory.
func NewCertManager(certDir string) *CertManager {
	return &CertManager{certDir: certDir, now: time.Now}
}

// LoadCertificates loads every .crt and .pem file under the cert directory.
func (cm *CertManager) LoadCertificates() ([]*x509.Certificate, error) {
	var certs []*x509.Certificate

	err := filepath.Walk(cm.certDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.HasSuffix(info.Name(), ".crt") || strings.HasSuffix(info.Name(), ".pem") {
			loaded, err := loadCertificates(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			certs = append(certs, loaded...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return certs, nil
}

// Pool returns the system roots plus every unexpired certificate in the
// directory. Expired certificates are returned separately so callers can
// report them.
func (cm *CertManager) Pool() (*x509.CertPool, []*x509.Certificate, error) {
	certs, err := cm.LoadCertificates()
	if err != nil {
		return nil, nil, err
	}

	pool, err := x509.SystemCertPool()
	if err != nil || pool == nil {
		pool = x509.NewCertPool()
	}

	var expired []*x509.Certificate
	for _, c := range certs {
		if cm.IsExpired(c) {
			expired = append(expired, c)
			continue
		}
		pool.AddCert(c)
	}
	return pool, expired, nil
}

// IsExpired checks if a certificate is expired.
func (cm *CertManager) IsExpired(cert *x509.Certificate) bool {
	return cert.NotAfter.Before(cm.now())
}

// loadCertificates parses every CERTIFICATE block in a PEM file.
func loadCertificates(path string) ([]*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var certs []*x509.Certificate
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	if len(certs) == 0 {
		return nil, errors.New("failed to parse certificate PEM")
	}
	return certs, nil
}
