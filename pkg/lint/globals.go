package lint

import "slices"

// globals maps an environment name to the variables it defines. The value
// reports whether the variable is writable.
//
//nolint:gochecknoglobals // Static lookup table.
var globals = map[string]map[string]bool{
	"builtin": {
		"AggregateError": false,
		"Array": false,
		"ArrayBuffer": false,
		"Atomics": false,
		"BigInt": false,
		"BigInt64Array": false,
		"BigUint64Array": false,
		"Boolean": false,
		"DataView": false,
		"Date": false,
		"Error": false,
		"EvalError": false,
		"FinalizationRegistry": false,
		"Float32Array": false,
		"Float64Array": false,
		"Function": false,
		"Infinity": false,
		"Int16Array": false,
		"Int32Array": false,
		"Int8Array": false,
		"Intl": false,
		"JSON": false,
		"Map": false,
		"Math": false,
		"NaN": false,
		"Number": false,
		"Object": false,
		"Promise": false,
		"Proxy": false,
		"RangeError": false,
		"ReferenceError": false,
		"Reflect": false,
		"RegExp": false,
		"Set": false,
		"SharedArrayBuffer": false,
		"String": false,
		"Symbol": false,
		"SyntaxError": false,
		"TypeError": false,
		"URIError": false,
		"Uint16Array": false,
		"Uint32Array": false,
		"Uint8Array": false,
		"Uint8ClampedArray": false,
		"WeakMap": false,
		"WeakRef": false,
		"WeakSet": false,
		"constructor": false,
		"decodeURI": false,
		"decodeURIComponent": false,
		"encodeURI": false,
		"encodeURIComponent": false,
		"escape": false,
		"eval": false,
		"globalThis": false,
		"hasOwnProperty": false,
		"isFinite": false,
		"isNaN": false,
		"isPrototypeOf": false,
		"parseFloat": false,
		"parseInt": false,
		"propertyIsEnumerable": false,
		"toLocaleString": false,
		"toString": false,
		"undefined": false,
		"unescape": false,
		"valueOf": false,
	},
	"browser": {
		"AbortController": false,
		"AbortSignal": false,
		"Blob": false,
		"BroadcastChannel": false,
		"CSS": false,
		"CanvasRenderingContext2D": false,
		"CloseEvent": false,
		"Comment": false,
		"CustomEvent": false,
		"DOMException": false,
		"DOMParser": false,
		"Document": false,
		"DocumentFragment": false,
		"Element": false,
		"Event": false,
		"EventSource": false,
		"EventTarget": false,
		"File": false,
		"FileList": false,
		"FileReader": false,
		"FormData": false,
		"HTMLAnchorElement": false,
		"HTMLButtonElement": false,
		"HTMLCanvasElement": false,
		"HTMLDivElement": false,
		"HTMLElement": false,
		"HTMLFormElement": false,
		"HTMLImageElement": false,
		"HTMLInputElement": false,
		"HTMLSelectElement": false,
		"HTMLTextAreaElement": false,
		"Headers": false,
		"History": false,
		"IntersectionObserver": false,
		"KeyboardEvent": false,
		"Location": false,
		"MessageChannel": false,
		"MessageEvent": false,
		"MessagePort": false,
		"MouseEvent": false,
		"MutationObserver": false,
		"Navigator": false,
		"Node": false,
		"NodeList": false,
		"Notification": false,
		"Performance": false,
		"PointerEvent": false,
		"ReadableStream": false,
		"Request": false,
		"ResizeObserver": false,
		"Response": false,
		"Storage": false,
		"Text": false,
		"TextDecoder": false,
		"TextEncoder": false,
		"URL": false,
		"URLSearchParams": false,
		"WebSocket": false,
		"Window": false,
		"Worker": false,
		"WritableStream": false,
		"XMLHttpRequest": false,
		"XMLSerializer": false,
		"addEventListener": false,
		"alert": false,
		"atob": false,
		"blur": false,
		"btoa": false,
		"caches": false,
		"cancelAnimationFrame": false,
		"clearInterval": false,
		"clearTimeout": false,
		"close": false,
		"closed": false,
		"confirm": false,
		"console": false,
		"createImageBitmap": false,
		"crypto": false,
		"customElements": false,
		"devicePixelRatio": false,
		"dispatchEvent": false,
		"document": false,
		"fetch": false,
		"focus": false,
		"frames": false,
		"getComputedStyle": false,
		"getSelection": false,
		"history": false,
		"indexedDB": false,
		"innerHeight": false,
		"innerWidth": false,
		"localStorage": false,
		"location": false,
		"matchMedia": false,
		"name": true,
		"navigator": false,
		"onerror": true,
		"onload": true,
		"onmessage": true,
		"onresize": true,
		"onscroll": true,
		"open": false,
		"opener": false,
		"origin": false,
		"outerHeight": false,
		"outerWidth": false,
		"parent": false,
		"performance": false,
		"postMessage": false,
		"print": false,
		"prompt": false,
		"queueMicrotask": false,
		"removeEventListener": false,
		"requestAnimationFrame": false,
		"requestIdleCallback": false,
		"screen": false,
		"scroll": false,
		"scrollBy": false,
		"scrollTo": false,
		"scrollX": false,
		"scrollY": false,
		"self": false,
		"sessionStorage": false,
		"setInterval": false,
		"setTimeout": false,
		"status": true,
		"structuredClone": false,
		"top": false,
		"window": false,
	},
	"node": {
		"AbortController": false,
		"AbortSignal": false,
		"Blob": false,
		"BroadcastChannel": false,
		"Buffer": false,
		"DOMException": false,
		"Event": false,
		"EventTarget": false,
		"FormData": false,
		"Headers": false,
		"Intl": false,
		"MessageChannel": false,
		"MessageEvent": false,
		"MessagePort": false,
		"Request": false,
		"Response": false,
		"TextDecoder": false,
		"TextEncoder": false,
		"URL": false,
		"URLSearchParams": false,
		"WebAssembly": false,
		"__dirname": false,
		"__filename": false,
		"clearImmediate": false,
		"clearInterval": false,
		"clearTimeout": false,
		"console": false,
		"crypto": false,
		"exports": false,
		"fetch": false,
		"global": false,
		"module": false,
		"performance": false,
		"process": false,
		"queueMicrotask": false,
		"require": false,
		"setImmediate": false,
		"setInterval": false,
		"setTimeout": false,
		"structuredClone": false,
	},
	"commonjs": {
		"exports": false,
		"global": false,
		"module": false,
		"require": false,
	},
	"shared-node-browser": {
		"AbortController": false,
		"AbortSignal": false,
		"Blob": false,
		"BroadcastChannel": false,
		"DOMException": false,
		"Event": false,
		"EventTarget": false,
		"FormData": false,
		"Headers": false,
		"Request": false,
		"Response": false,
		"TextDecoder": false,
		"TextEncoder": false,
		"URL": false,
		"URLSearchParams": false,
		"atob": false,
		"btoa": false,
		"clearInterval": false,
		"clearTimeout": false,
		"console": false,
		"crypto": false,
		"fetch": false,
		"performance": false,
		"queueMicrotask": false,
		"setInterval": false,
		"setTimeout": false,
		"structuredClone": false,
	},
	"worker": {
		"Blob": false,
		"BroadcastChannel": false,
		"FileReaderSync": false,
		"FormData": false,
		"Headers": false,
		"ImportScripts": false,
		"Request": false,
		"Response": false,
		"TextDecoder": false,
		"TextEncoder": false,
		"URL": false,
		"URLSearchParams": false,
		"WebSocket": false,
		"Worker": false,
		"XMLHttpRequest": false,
		"addEventListener": false,
		"atob": false,
		"btoa": false,
		"caches": false,
		"clearInterval": false,
		"clearTimeout": false,
		"close": false,
		"console": false,
		"crypto": false,
		"fetch": false,
		"importScripts": false,
		"indexedDB": false,
		"location": false,
		"navigator": false,
		"onerror": true,
		"onmessage": true,
		"performance": false,
		"postMessage": false,
		"queueMicrotask": false,
		"removeEventListener": false,
		"self": false,
		"setInterval": false,
		"setTimeout": false,
	},
	"jest": {
		"afterAll": false,
		"afterEach": false,
		"beforeAll": false,
		"beforeEach": false,
		"describe": false,
		"expect": false,
		"fit": false,
		"it": false,
		"jest": false,
		"pit": false,
		"require": false,
		"test": false,
		"xdescribe": false,
		"xit": false,
		"xtest": false,
	},
	"mocha": {
		"after": false,
		"afterEach": false,
		"before": false,
		"beforeEach": false,
		"context": false,
		"describe": false,
		"it": false,
		"mocha": false,
		"run": false,
		"setup": false,
		"specify": false,
		"suite": false,
		"suiteSetup": false,
		"suiteTeardown": false,
		"teardown": false,
		"test": false,
		"xcontext": false,
		"xdescribe": false,
		"xit": false,
		"xspecify": false,
	},
}

func init() {
	// The yearly ES environments add no globals beyond the builtin set.
	for _, year := range []string{"es6", "es2015", "es2016", "es2017", "es2018", "es2019", "es2020", "es2021", "es2022"} {
		globals[year] = globals["builtin"]
	}
}

// EnvGlobals returns the variables defined by the environment, and whether
// the environment is known.
func EnvGlobals(env string) (map[string]bool, bool) {
	vars, ok := globals[env]
	return vars, ok
}

// Environments returns the names of all known environments, sorted.
func Environments() []string {
	names := make([]string, 0, len(globals))
	for name := range globals {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
