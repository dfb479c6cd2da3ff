package secretstorehandler

import (
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/secretstore-backend/cryptoutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyMaterialHex = "cac6c205eb06c8308d65156ff6c862c62b000b8ead121a4455a8ddeff7248128d895692136f240d5d1614dc7cc4147b1bd584bd617e30560bb872064d09ea325"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(cryptoutils.NewDocumentCipher(nil), log)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	data, err := hex.DecodeString(s)
	require.NoError(t, err, "Failed to decode test hex")
	return data
}

func TestEncryptAndDecryptViaAPI(t *testing.T) {
	srv := newTestServer(t)
	client := &Client{Client: srv.Client()}

	keyMaterial := mustHex(t, testKeyMaterialHex)
	document := []byte("Hello, world!!!")

	encrypted, err := client.EncryptDocument(srv.URL, keyMaterial, document)
	require.NoError(t, err, "Encrypt request should succeed")
	assert.Equal(t, len(document)+cryptoutils.InitVectorLength, len(encrypted), "Encrypted document should be plaintext length plus IV")
	assert.NotEqual(t, document, encrypted[:len(document)], "Ciphertext should differ from the plaintext")

	decrypted, err := client.DecryptDocument(srv.URL, keyMaterial, encrypted)
	require.NoError(t, err, "Decrypt request should succeed")
	assert.Equal(t, document, decrypted, "Round trip through the API should reproduce the document")
}

func TestShadowDecryptViaAPI(t *testing.T) {
	srv := newTestServer(t)
	client := &Client{Client: srv.Client()}

	decryptedShadow, err := cryptoutils.NewPublicFromHex("843645726384530ffb0c52f175278143b5a93959af7864460f5a4fec9afd1450cfb8aef63dec90657f43f55b13e0a73c7524d4e9a13c051b4e5f1e53f39ecd91")
	require.NoError(t, err)
	commonPoint, err := cryptoutils.NewPublicFromHex("07230e34ebfe41337d3ed53b186b3861751f2401ee74b988bba55694e2a6f60c757677e194be2e53c3523cc8548694e636e6acb35c4e8fdc5e29d28679b9b2f3")
	require.NoError(t, err)
	shadow, err := cryptoutils.NewSecretFromHex("46f542416216f66a7d7881f5a283d2a1ab7a87b381cbc5f29d0b093c7c89ee31")
	require.NoError(t, err)

	document, err := client.DecryptDocumentWithShadow(srv.URL,
		decryptedShadow, commonPoint, []cryptoutils.Secret{shadow},
		mustHex(t, "2ddec1f96229efa2916988d8b2a82a47ef36f71c"))
	require.NoError(t, err, "Shadow decrypt request should succeed")
	assert.Equal(t, "deadbeef", hex.EncodeToString(document), "Reference vector should decrypt to the known document")
}

func TestEncryptRejectsInvalidKey(t *testing.T) {
	srv := newTestServer(t)
	client := &Client{Client: srv.Client()}

	_, err := client.EncryptDocument(srv.URL, make([]byte, 32), []byte("doc"))
	require.Error(t, err, "Encrypt should fail with short key material")
	assert.Contains(t, err.Error(), "returned 400", "Short key material should map to a parameter validation error")
	assert.Contains(t, err.Error(), cryptoutils.ErrInvalidKeyLength.Error())
}

func TestDecryptRejectsShortCiphertext(t *testing.T) {
	srv := newTestServer(t)
	client := &Client{Client: srv.Client()}

	_, err := client.DecryptDocument(srv.URL, mustHex(t, testKeyMaterialHex), make([]byte, 10))
	require.Error(t, err, "Decrypt should fail with a buffer shorter than the IV")
	assert.Contains(t, err.Error(), "returned 400")
	assert.Contains(t, err.Error(), cryptoutils.ErrInvalidCiphertext.Error())
}

func TestShadowDecryptErrorIsOpaque(t *testing.T) {
	srv := newTestServer(t)
	client := &Client{Client: srv.Client()}

	decryptedShadow, err := cryptoutils.NewPublicFromHex("843645726384530ffb0c52f175278143b5a93959af7864460f5a4fec9afd1450cfb8aef63dec90657f43f55b13e0a73c7524d4e9a13c051b4e5f1e53f39ecd91")
	require.NoError(t, err)

	// A zero coefficient fails the combination; the response must not say
	// which arithmetic step rejected it.
	zero := make(cryptoutils.Secret, cryptoutils.SecretLength)
	_, err = client.DecryptDocumentWithShadow(srv.URL,
		decryptedShadow, decryptedShadow, []cryptoutils.Secret{zero},
		mustHex(t, "2ddec1f96229efa2916988d8b2a82a47ef36f71c"))
	require.Error(t, err, "Shadow decrypt should fail with a zero coefficient")
	assert.Contains(t, err.Error(), "returned 400")
	assert.Contains(t, err.Error(), cryptoutils.ErrEncryptionFailed.Error())
	assert.NotContains(t, err.Error(), "zero", "Combination failures should not expose the failing step")
	assert.NotContains(t, err.Error(), "scalar", "Combination failures should not expose the failing step")
}

func TestShadowDecryptRejectsMalformedParameters(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "short decrypted secret",
			body: `{"decrypted_secret":"0x00","common_point":"0x00","decrypt_shadows":["0x00"],"encrypted":"0x00"}`,
			want: "invalid decrypted_secret",
		},
		{
			name: "empty shadow set",
			body: `{"decrypted_secret":"0x` + strings.Repeat("11", 64) + `","common_point":"0x` + strings.Repeat("11", 64) + `","decrypt_shadows":[],"encrypted":"0x00"}`,
			want: "decrypt_shadows must not be empty",
		},
		{
			name: "short shadow coefficient",
			body: `{"decrypted_secret":"0x` + strings.Repeat("11", 64) + `","common_point":"0x` + strings.Repeat("11", 64) + `","decrypt_shadows":["0x2222"],"encrypted":"0x00"}`,
			want: "invalid decrypt_shadows[0]",
		},
		{
			name: "missing hex prefix",
			body: `{"decrypted_secret":"abcd","common_point":"0x00","decrypt_shadows":["0x00"],"encrypted":"0x00"}`,
			want: "could not decode request",
		},
		{
			name: "malformed json",
			body: `{"decrypted_secret"`,
			want: "could not decode request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := srv.Client().Post(srv.URL+"/api/v1/document/shadow-decrypt", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "Malformed parameters should map to 400")
			assert.Contains(t, string(body), tt.want)
		})
	}
}
