package render

// Design variants are static visual presets keyed by the suffix of a
// compound element type ("cyber-button:cb-3" → "cb-3"). Each preset is
// a block of CSS declarations appended after the element's own style,
// so user edits in the style panel win only for properties the preset
// does not set.
var variantPresets = map[string]string{
	// cyber-button family
	"cb-1": "background:#0ff;color:#000;border:2px solid #0ff;box-shadow:0 0 12px #0ff;font-family:monospace;text-transform:uppercase",
	"cb-2": "background:#000;color:#0ff;border:2px solid #0ff;box-shadow:inset 0 0 8px #0ff;font-family:monospace",
	"cb-3": "background:linear-gradient(90deg,#f0f,#0ff);color:#fff;border:none;font-family:monospace;text-transform:uppercase;letter-spacing:2px",
	"cb-4": "background:#111;color:#f0f;border:1px solid #f0f;box-shadow:0 0 10px #f0f",
	"cb-5": "background:transparent;color:#0f0;border:1px dashed #0f0;font-family:monospace",

	// neon-button family
	"nb-1": "background:transparent;color:#39ff14;border:2px solid #39ff14;box-shadow:0 0 16px rgba(57,255,20,.6);border-radius:6px",
	"nb-2": "background:#39ff14;color:#000;border:none;box-shadow:0 0 20px rgba(57,255,20,.8);border-radius:6px",
	"nb-3": "background:transparent;color:#ff6ec7;border:2px solid #ff6ec7;box-shadow:0 0 16px rgba(255,110,199,.6);border-radius:999px",

	// glass-button family
	"gb-1": "background:rgba(255,255,255,.12);color:#fff;border:1px solid rgba(255,255,255,.3);backdrop-filter:blur(8px);border-radius:10px",
	"gb-2": "background:rgba(0,0,0,.25);color:#fff;border:1px solid rgba(255,255,255,.18);backdrop-filter:blur(12px);border-radius:14px",

	// retro-button family
	"rb-1": "background:#ffd700;color:#222;border:3px solid #222;box-shadow:4px 4px 0 #222;border-radius:0",
	"rb-2": "background:#ff6347;color:#fff;border:3px solid #222;box-shadow:4px 4px 0 #222;border-radius:0",

	// minimal-button family
	"mb-1": "background:#fff;color:#111;border:1px solid #e5e5e5;border-radius:8px",
	"mb-2": "background:#111;color:#fff;border:none;border-radius:8px",
}

// VariantCSS returns the preset declarations for a design variant,
// or "" when the variant is unknown.
func VariantCSS(variant string) string {
	return variantPresets[variant]
}
