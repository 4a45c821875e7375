package model

import "github.com/Vecno-Foundation/vecnod/domain/consensus/model/externalapi"

// Multiset represents a secure, order-independent hash of a set of elements
type Multiset interface {
	Add(data []byte)
	Remove(data []byte)
	Hash() *externalapi.DomainHash
	Serialize() []byte
	Clone() Multiset
}
