// Package bol contains the Bill of Lading aggregate: the immutable, uniquely
// numbered shipping document issued for one fulfilled load.
//
// A BOL's number and snapshot are fixed at issuance. Afterwards only the void
// fields and the stored document reference may change.
package bol
