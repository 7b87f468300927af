package probe

import "strings"

// whoisServers maps a TLD (or public suffix) to its registry WHOIS
// server. Hosts under a suffix missing here fail the WHOIS probe for
// that one target; the run keeps going.
var whoisServers = map[string]string{
	"com":  "whois.verisign-grs.com",
	"net":  "whois.verisign-grs.com",
	"org":  "whois.pir.org",
	"edu":  "whois.educause.edu",
	"gov":  "whois.dotgov.gov",
	"int":  "whois.iana.org",
	"info": "whois.nic.info",
	"biz":  "whois.nic.biz",
	"pro":  "whois.nic.pro",

	"io":     "whois.nic.io",
	"co":     "whois.nic.co",
	"me":     "whois.nic.me",
	"tv":     "whois.nic.tv",
	"cc":     "ccwhois.verisign-grs.com",
	"ai":     "whois.nic.ai",
	"sh":     "whois.nic.sh",
	"dev":    "whois.nic.google",
	"app":    "whois.nic.google",
	"page":   "whois.nic.google",
	"xyz":    "whois.nic.xyz",
	"site":   "whois.nic.site",
	"online": "whois.nic.online",
	"top":    "whois.nic.top",
	"club":   "whois.nic.club",
	"shop":   "whois.nic.shop",
	"to":     "whois.tonic.to",
	"fm":     "whois.nic.fm",
	"im":     "whois.nic.im",
	"la":     "whois.nic.la",
	"ly":     "whois.nic.ly",
	"st":     "whois.nic.st",
	"ws":     "whois.website.ws",

	"us":     "whois.nic.us",
	"uk":     "whois.nic.uk",
	"co.uk":  "whois.nic.uk",
	"org.uk": "whois.nic.uk",
	"ca":     "whois.cira.ca",
	"au":     "whois.auda.org.au",
	"com.au": "whois.auda.org.au",
	"nz":     "whois.irs.net.nz",

	"de": "whois.denic.de",
	"fr": "whois.nic.fr",
	"nl": "whois.domain-registry.nl",
	"be": "whois.dns.be",
	"eu": "whois.eu",
	"es": "whois.nic.es",
	"it": "whois.nic.it",
	"ch": "whois.nic.ch",
	"li": "whois.nic.li",
	"at": "whois.nic.at",
	"dk": "whois.punktum.dk",
	"se": "whois.iis.se",
	"no": "whois.norid.no",
	"fi": "whois.fi",
	"is": "whois.isnic.is",
	"ie": "whois.weare.ie",
	"pt": "whois.dns.pt",
	"pl": "whois.dns.pl",
	"cz": "whois.nic.cz",
	"sk": "whois.sk-nic.sk",
	"hu": "whois.nic.hu",
	"ro": "whois.rotld.ro",
	"lu": "whois.dns.lu",

	"ru": "whois.tcinet.ru",
	"ua": "whois.ua",
	"tr": "whois.nic.tr",
	"il": "whois.isoc.org.il",

	"jp": "whois.jprs.jp",
	"cn": "whois.cnnic.cn",
	"kr": "whois.kr",
	"tw": "whois.twnic.net.tw",
	"hk": "whois.hkirc.hk",
	"sg": "whois.sgnic.sg",
	"in": "whois.registry.in",

	"br":     "whois.registro.br",
	"com.br": "whois.registro.br",
	"mx":     "whois.mx",
	"ar":     "whois.nic.ar",
	"cl":     "whois.nic.cl",
}

// serverFor picks the WHOIS server for host by longest-suffix match, so
// "example.co.uk" matches "co.uk" before "uk".
func serverFor(host string) (string, bool) {
	h := strings.ToLower(strings.TrimSuffix(host, "."))
	for h != "" {
		if s, ok := whoisServers[h]; ok {
			return s, true
		}
		i := strings.Index(h, ".")
		if i < 0 {
			break
		}
		h = h[i+1:]
	}
	return "", false
}
