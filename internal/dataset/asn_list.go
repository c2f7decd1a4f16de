package dataset

// hostingASNs contains known datacenter/cloud/hosting provider ASNs.
// Only includes providers that are indisputably hosting infrastructure.
// Source: public BGP data + official provider documentation.
var hostingASNs = map[uint]string{
	// === Major Cloud Providers ===
	16509:  "Amazon.com / AWS",
	14618:  "Amazon.com / AWS",
	8075:   "Microsoft Azure",
	15169:  "Google Cloud",
	396982: "Google Cloud",
	45102:  "Alibaba Cloud",
	45090:  "Tencent Cloud",
	132203: "Tencent Cloud",
	31898:  "Oracle Cloud",
	36351:  "IBM Cloud / SoftLayer",
	13335:  "Cloudflare",

	// === VPS / Hosting Providers ===
	14061:  "DigitalOcean",
	20473:  "Vultr / Choopa",
	63949:  "Linode / Akamai Connected Cloud",
	396998: "Linode / Akamai Connected Cloud",
	16276:  "OVHcloud",
	24940:  "Hetzner Online",
	213230: "Hetzner Cloud",
	12876:  "Scaleway (Online SAS)",
	40021:  "Contabo",
	51167:  "Contabo",
	60781:  "LeaseWeb",
	28753:  "LeaseWeb",
	9009:   "M247 / G-Core Labs",
	202053: "UpCloud",
	47583:  "Hostinger",
	197540: "Netcup",

	// === Dedicated Server / Colocation ===
	33070: "Rackspace",
	19994: "Rackspace",
	36352: "ColoCrossing",
	40676: "Psychz Networks",
	21859: "Zenlayer",
	36007: "Kamatera",
	54290: "Hostwinds",

	// === CDN / Edge ===
	20940:  "Akamai Technologies",
	54113:  "Fastly",
	209242: "Cloudflare (WARP)",
	397213: "Cloudflare",
	60068:  "Datacamp (CDN77)",
}

// IsHostingASN checks if an ASN belongs to a known hosting provider.
func IsHostingASN(asn uint) (string, bool) {
	org, ok := hostingASNs[asn]
	return org, ok
}
