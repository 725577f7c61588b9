package button

import (
	"strings"

	"github.com/on-the-ground/viewstate/pure"
)

type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
	VariantSuccess   Variant = "success"
	VariantWarning   Variant = "warning"
	VariantDanger    Variant = "danger"
	VariantGhost     Variant = "ghost"
)

type Size string

const (
	SizeXS Size = "xs"
	SizeSM Size = "sm"
	SizeMD Size = "md"
	SizeLG Size = "lg"
	SizeXL Size = "xl"
)

var baseClasses = []string{
	"relative", "inline-flex", "items-center", "justify-center",
	"font-medium", "rounded-lg", "transition-all", "duration-200",
	"ease-in-out", "focus:outline-none", "focus:ring-2", "focus:ring-offset-2",
	"active:scale-95", "select-none", "overflow-hidden",
}

var sizeClasses = map[Size]string{
	SizeXS: "px-2.5 py-1.5 text-xs",
	SizeSM: "px-3 py-2 text-sm",
	SizeMD: "px-4 py-2 text-sm",
	SizeLG: "px-4 py-2 text-base",
	SizeXL: "px-6 py-3 text-base",
}

var variantClasses = map[Variant]string{
	VariantPrimary:   "bg-blue-600 hover:bg-blue-700 text-white focus:ring-blue-500 shadow-sm hover:shadow-md",
	VariantSecondary: "bg-gray-600 hover:bg-gray-700 text-white focus:ring-gray-500 shadow-sm hover:shadow-md",
	VariantSuccess:   "bg-green-600 hover:bg-green-700 text-white focus:ring-green-500 shadow-sm hover:shadow-md",
	VariantWarning:   "bg-yellow-500 hover:bg-yellow-600 text-white focus:ring-yellow-500 shadow-sm hover:shadow-md",
	VariantDanger:    "bg-red-600 hover:bg-red-700 text-white focus:ring-red-500 shadow-sm hover:shadow-md",
	VariantGhost:     "bg-transparent hover:bg-gray-100 text-gray-700 focus:ring-gray-500 border border-gray-300 hover:border-gray-400",
}

// 5 sizes x 6 variants x 2 x 2
const classTableSize = 120

var classes = pure.TableizeI4O1(buildClasses, classTableSize)

func buildClasses(size Size, variant Variant, fullWidth, inactive bool) string {
	out := append([]string{}, baseClasses...)
	if c, ok := sizeClasses[size]; ok {
		out = append(out, c)
	}
	if c, ok := variantClasses[variant]; ok {
		out = append(out, c)
	}
	if fullWidth {
		out = append(out, "w-full")
	}
	if inactive {
		out = append(out, "opacity-50", "cursor-not-allowed", "pointer-events-none")
	}
	return strings.Join(out, " ")
}
