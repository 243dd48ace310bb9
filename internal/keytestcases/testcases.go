// Package keytestcases contains well-known ed25519 key material shared by
// key, address and wallet tests.
package keytestcases

// Ktype represents a key test case with the values derived from its seed.
type Ktype struct {
	Address    string
	PrivateKey string
	PublicKey  string
	Kif        string
	Invalid    bool
}

// Arr contains a set of known test cases, the first three follow RFC 8032
// and the last one is invalid.
var Arr = []Ktype{
	{
		Address:    "vsn1y8lrrhap2j3xzcntlp2qgm7jyudhhm2ttz6ynv",
		PrivateKey: "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60",
		PublicKey:  "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a",
		Kif:        "6V3eriqg9dRNVCt7MqkdTquNKr5nsVJSKVeYAvbEvHDzkjSH7vT",
	},
	{
		Address:    "vsn188m3859xgsjn7pzjjssmnagmnvyf08ggsu40rp",
		PrivateKey: "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb",
		PublicKey:  "3d4017c3e843895a92b70aa74d1b7ebc9c982ccf2ec4968cc0cd55f12af4660c",
		Kif:        "6USAXpQk2Hy5Hqpat73CFptELLFkqEw1zMqUfkhASgHaKXRRZwT",
	},
	{
		Address:    "vsn1mtq88cqj8002t8wekw76nnmqxlmr4j5z78mfd5",
		PrivateKey: "c5aa8df43f9f837bedb7442f31dcb7b166d38535076f094b85ce3a2e0b4458f7",
		PublicKey:  "fc51cd8e6218a1a38da47ed00230f0580816ed13ba3303ac5deb911548908025",
		Kif:        "6VMPsfqLjWCMKiGjkU3Ua9PgpZwQgFGj4UTHi6kjvAuLr7E9HEb",
	},
	{
		Address:    "xxx1y8lrrhap2j3xzcntlp2qgm7jyudhhm2ttz6ynv",
		PrivateKey: "zzb19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60",
		PublicKey:  "zz5a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a",
		Kif:        "zz3eriqg9dRNVCt7MqkdTquNKr5nsVJSKVeYAvbEvHDzkjSH7vT",
		Invalid:    true,
	},
}
