package secretstorehandler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ruteri/secretstore-backend/cryptoutils"
)

// Client implements a typed client for the document encryption API. The
// zero value uses http.DefaultClient.
type Client struct {
	Client *http.Client
}

// DefaultClient is a pre-configured Client instance with the default HTTP
// client. It can be used directly for most applications.
var DefaultClient = &Client{
	Client: http.DefaultClient,
}

// EncryptDocument asks the service to encrypt a document under the given
// 64-byte distributed key material and returns the encrypted buffer.
func (c *Client) EncryptDocument(url string, keyMaterial, document []byte) ([]byte, error) {
	var resp EncryptResponse
	err := c.post(url+"/api/v1/document/encrypt", &EncryptRequest{
		Key:      keyMaterial,
		Document: document,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Encrypted, nil
}

// DecryptDocument asks the service to decrypt an encrypted document with
// fully assembled key material.
func (c *Client) DecryptDocument(url string, keyMaterial, encrypted []byte) ([]byte, error) {
	var resp DecryptResponse
	err := c.post(url+"/api/v1/document/decrypt", &DecryptRequest{
		Key:       keyMaterial,
		Encrypted: encrypted,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Document, nil
}

// DecryptDocumentWithShadow asks the service to decrypt an encrypted
// document from partial decryption contributions.
func (c *Client) DecryptDocumentWithShadow(url string, decryptedShadow, commonPoint cryptoutils.Public, shadowCoefficients []cryptoutils.Secret, encrypted []byte) ([]byte, error) {
	shadows := make([]hexutil.Bytes, len(shadowCoefficients))
	for i, coefficient := range shadowCoefficients {
		shadows[i] = hexutil.Bytes(coefficient)
	}

	var resp DecryptResponse
	err := c.post(url+"/api/v1/document/shadow-decrypt", &ShadowDecryptRequest{
		DecryptedSecret: hexutil.Bytes(decryptedShadow),
		CommonPoint:     hexutil.Bytes(commonPoint),
		DecryptShadows:  shadows,
		Encrypted:       encrypted,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Document, nil
}

func (c *Client) post(url string, request, response any) error {
	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("could not encode request: %w", err)
	}

	if c.Client == nil {
		c.Client = http.DefaultClient
	}

	resp, err := c.Client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not request secret store: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read secret store response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("secret store returned %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, response); err != nil {
		return fmt.Errorf("could not parse secret store response: %w", err)
	}
	return nil
}
