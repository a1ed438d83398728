// Package cryptox seals backup archives with a password and binds them to an
// account.
//
// An artifact is a fixed 63-byte Header followed by a 24-byte stream header
// and one ChaCha20-Poly1305 stream message. The key is derived from the
// password with argon2id using the salt and cost parameters stored in the
// Header. The Header also carries an account-binding hash: the same KDF run
// over the account id, which lets a reader reject an archive of another
// account before the payload key is derived or the ciphertext is opened.
package cryptox
