package wallet

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
)

// Wallet 錢包：P-256 私鑰的產生、載入與簽章。
// ledger 本身只消費 Verify，不持有任何私鑰
type Wallet struct {
	key  *ecdsa.PrivateKey
	file string
}

type walletFile struct {
	PrivateKeyHex string `json:"private_key_hex"`
}

func New(file string) *Wallet {
	return &Wallet{file: file}
}

// CreateNewKey 產生新的 P-256 私鑰並存檔
func (w *Wallet) CreateNewKey() error {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return err
	}
	w.key = key
	return w.saveKeyToFile()
}

// LoadKey 從錢包檔載入私鑰；檔案不存在回傳 false
func (w *Wallet) LoadKey() (bool, error) {
	data, err := os.ReadFile(w.file)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var wf walletFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return false, err
	}
	der, err := hex.DecodeString(wf.PrivateKeyHex)
	if err != nil {
		return false, err
	}
	key, err := x509.ParseECPrivateKey(der)
	if err != nil {
		return false, err
	}
	w.key = key
	return true, nil
}

// Sign 以 ECDSA + SHA-256 對資料簽章
func (w *Wallet) Sign(data []byte) ([]byte, error) {
	if w.key == nil {
		return nil, errors.New("no private key loaded")
	}
	digest := sha256.Sum256(data)
	return ecdsa.SignASN1(rand.Reader, w.key, digest[:])
}

// PublicKeyBytes 公鑰的 DER 編碼（SubjectPublicKeyInfo）
func (w *Wallet) PublicKeyBytes() ([]byte, error) {
	if w.key == nil {
		return nil, errors.New("no private key loaded")
	}
	return x509.MarshalPKIXPublicKey(&w.key.PublicKey)
}

// Address 錢包地址：公鑰 DER 十六進位的前 16 個字元
func (w *Wallet) Address() (string, error) {
	pub, err := w.PublicKeyBytes()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(pub)[:16], nil
}

func (w *Wallet) saveKeyToFile() error {
	der, err := x509.MarshalECPrivateKey(w.key)
	if err != nil {
		return err
	}
	data, err := json.Marshal(walletFile{PrivateKeyHex: hex.EncodeToString(der)})
	if err != nil {
		return err
	}
	return os.WriteFile(w.file, data, 0o600)
}

// Verify 驗證簽章。任何失敗（壞公鑰、壞簽章、內容不符）都回傳 false，不會 panic
func Verify(payload, signature, publicKeyDER []byte) bool {
	pub, err := x509.ParsePKIXPublicKey(publicKeyDER)
	if err != nil {
		return false
	}
	ecdsaPub, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		return false
	}
	digest := sha256.Sum256(payload)
	return ecdsa.VerifyASN1(ecdsaPub, digest[:], signature)
}
