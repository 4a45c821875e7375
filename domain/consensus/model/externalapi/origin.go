package externalapi

// OriginHash is the hash of the DAG origin, a sentinel standing in for
// every block whose past is unknown. Trusted blocks pointing outside of
// the data they arrived with are rewired to it.
var OriginHash = NewDomainHashFromByteArray(&[DomainHashSize]byte{
	0xfe, 0xfe, 0xfe, 0xfe, 0xfe, 0xfe, 0xfe, 0xfe,
	0xfe, 0xfe, 0xfe, 0xfe, 0xfe, 0xfe, 0xfe, 0xfe,
	0xfe, 0xfe, 0xfe, 0xfe, 0xfe, 0xfe, 0xfe, 0xfe,
	0xfe, 0xfe, 0xfe, 0xfe, 0xfe, 0xfe, 0xfe, 0xfe,
})
