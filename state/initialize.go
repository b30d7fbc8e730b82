package state

import (
	"time"

	"rnm/config"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		DefaultThemes: map[config.ThemeStyle][]byte{
			config.ThemeStyleWarm: []byte(`<svg viewBox="0 0 1242 1660" xmlns="http://www.w3.org/2000/svg">
  <rect width="1242" height="1660" fill="#f7efe2"/>
  <path d="
    M0 0 H1242 V300
    C900 380, 342 380, 0 300
    Z"
  fill="#f0ddc2"/>
  <rect x="56" y="56" width="1130" height="1548" rx="24" fill="none" stroke="#c9a36a" stroke-width="3"/>
  <path d="M480 1540 H591 M651 1540 H762" stroke="#c9a36a" stroke-width="3"/>
  <circle cx="621" cy="1540" r="10" fill="#c9a36a"/>
</svg>`),
			config.ThemeStylePaper: []byte(`<svg viewBox="0 0 1242 1660" xmlns="http://www.w3.org/2000/svg">
  <rect width="1242" height="1660" fill="#fbfaf7"/>
  <rect x="40" y="40" width="1162" height="1580" fill="none" stroke="#2f2f2f" stroke-width="4"/>
  <rect x="64" y="64" width="1114" height="1532" fill="none" stroke="#2f2f2f" stroke-width="1.5"/>
  <path d="M40 150 V40 H150 M1092 40 H1202 V150" fill="none" stroke="#2f2f2f" stroke-width="1.5"/>
  <path d="M40 1510 V1620 H150 M1092 1620 H1202 V1510" fill="none" stroke="#2f2f2f" stroke-width="1.5"/>
</svg>`),
			config.ThemeStyleGradient: []byte(`<svg viewBox="0 0 1242 1660" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <linearGradient id="bg" x1="0" y1="0" x2="1" y2="1">
      <stop offset="0" stop-color="#ffe3d0"/>
      <stop offset="0.5" stop-color="#f6c7d9"/>
      <stop offset="1" stop-color="#cfd8ff"/>
    </linearGradient>
  </defs>
  <rect width="1242" height="1660" fill="url(#bg)"/>
  <rect x="72" y="72" width="1098" height="1516" rx="36" fill="#ffffff" fill-opacity="0.55"/>
</svg>`),
			config.ThemeStyleNight: []byte(`<svg viewBox="0 0 1242 1660" xmlns="http://www.w3.org/2000/svg">
  <rect width="1242" height="1660" fill="#1c2030"/>
  <rect x="60" y="60" width="1122" height="1540" rx="28" fill="#242a3d"/>
  <circle cx="1050" cy="190" r="46" fill="#f2e9c9"/>
  <circle cx="1032" cy="178" r="40" fill="#242a3d"/>
  <circle cx="260" cy="300" r="3" fill="#8b93b8"/>
  <circle cx="420" cy="180" r="2" fill="#8b93b8"/>
  <circle cx="880" cy="420" r="2.5" fill="#8b93b8"/>
</svg>`),
		},
	}
}
