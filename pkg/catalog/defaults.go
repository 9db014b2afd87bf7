package catalog

import "labelmesh/pkg/palette"

// DefaultHSV returns the built-in whole-body catalog on the HSV ramp. Paired
// left/right structures and the vertebrae deliberately share colors.
func DefaultHSV() *Catalog {
	c := New(palette.HSVRamp, nil)
	for name, hsv := range defaultHSV {
		c.Add(name, palette.HSV(hsv[0], hsv[1], hsv[2]))
	}
	return c
}

var defaultHSV = map[string][3]float64{
	"spleen.nii.gz":                       {2.13, 0.64, 0.86},
	"kidney_right.nii.gz":                 {1.09, 0.79, 0.18},
	"kidney_left.nii.gz":                  {1.09, 0.79, 0.18},
	"gallbladder.nii.gz":                  {0.65, 0.48, 0.71},
	"liver.nii.gz":                        {0.28, 0.57, 0.92},
	"stomach.nii.gz":                      {3.60, 0.65, 0.77},
	"pancreas.nii.gz":                     {1.39, 0.76, 0.88},
	"adrenal_gland_right.nii.gz":          {1.55, 0.70, 0.57},
	"adrenal_gland_left.nii.gz":           {1.55, 0.70, 0.57},
	"lung_upper_lobe_left.nii.gz":         {2.79, 0.98, 0.76},
	"lung_lower_lobe_left.nii.gz":         {0.52, 0.63, 0.93},
	"lung_upper_lobe_right.nii.gz":        {2.79, 0.98, 0.76},
	"lung_middle_lobe_right.nii.gz":       {3.60, 0.65, 0.77},
	"lung_lower_lobe_right.nii.gz":        {0.52, 0.63, 0.93},
	"esophagus.nii.gz":                    {1.55, 0.70, 0.61},
	"trachea.nii.gz":                      {0.88, 0.88, 0.55},
	"thyroid_gland.nii.gz":                {2.98, 0.93, 0.45},
	"small_bowel.nii.gz":                  {2.79, 0.98, 0.64},
	"duodenum.nii.gz":                     {0.52, 0.63, 0.93},
	"colon.nii.gz":                        {0.66, 0.49, 0.70},
	"urinary_bladder.nii.gz":              {0.88, 0.88, 0.55},
	"prostate.nii.gz":                     {1.60, 0.53, 0.56},
	"kidney_cyst_left.nii.gz":             {3.0, 1.0, 1.0},
	"kidney_cyst_right.nii.gz":            {3.0, 1.0, 1.0},
	"sacrum.nii.gz":                       {3.51, 0.82, 0.98},
	"vertebrae_S1.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_L5.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_L4.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_L3.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_L2.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_L1.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_T12.nii.gz":                {0.74, 0.35, 0.97},
	"vertebrae_T11.nii.gz":                {0.74, 0.35, 0.97},
	"vertebrae_T10.nii.gz":                {0.74, 0.35, 0.97},
	"vertebrae_T9.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_T8.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_T7.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_T6.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_T5.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_T4.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_T3.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_T2.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_T1.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_C7.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_C6.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_C5.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_C4.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_C3.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_C2.nii.gz":                 {0.74, 0.35, 0.97},
	"vertebrae_C1.nii.gz":                 {0.74, 0.35, 0.97},
	"heart.nii.gz":                        {3.60, 1.0, 1.0},
	"aorta.nii.gz":                        {2.79, 0.98, 0.76},
	"pulmonary_vein.nii.gz":               {0.88, 0.87, 0.49},
	"brachiocephalic_trunk.nii.gz":        {3.43, 0.79, 0.45},
	"subclavian_artery_right.nii.gz":      {1.70, 0.20, 0.97},
	"subclavian_artery_left.nii.gz":       {1.70, 0.20, 0.97},
	"common_carotid_artery_right.nii.gz":  {2.97, 0.88, 0.39},
	"common_carotid_artery_left.nii.gz":   {2.97, 0.88, 0.39},
	"brachiocephalic_vein_left.nii.gz":    {3.43, 0.79, 0.45},
	"brachiocephalic_vein_right.nii.gz":   {3.43, 0.79, 0.45},
	"atrial_appendage_left.nii.gz":        {1.09, 0.79, 0.18},
	"superior_vena_cava.nii.gz":           {2.79, 0.98, 0.76},
	"inferior_vena_cava.nii.gz":           {0.87, 0.88, 0.60},
	"portal_vein_and_splenic_vein.nii.gz": {0.29, 0.57, 0.92},
	"iliac_artery_left.nii.gz":            {3.60, 0.65, 0.73},
	"iliac_artery_right.nii.gz":           {3.60, 0.65, 0.73},
	"iliac_vena_left.nii.gz":              {0.66, 0.49, 0.70},
	"iliac_vena_right.nii.gz":             {0.66, 0.49, 0.70},
	"humerus_left.nii.gz":                 {0.74, 0.35, 0.97},
	"humerus_right.nii.gz":                {0.74, 0.35, 0.97},
	"scapula_left.nii.gz":                 {0.74, 0.35, 0.97},
	"scapula_right.nii.gz":                {0.74, 0.35, 0.97},
	"clavicula_left.nii.gz":               {0.74, 0.35, 0.97},
	"clavicula_right.nii.gz":              {0.74, 0.35, 0.97},
	"femur_left.nii.gz":                   {0.74, 0.35, 0.97},
	"femur_right.nii.gz":                  {0.74, 0.35, 0.97},
	"hip_left.nii.gz":                     {0.74, 0.35, 0.97},
	"hip_right.nii.gz":                    {0.74, 0.35, 0.97},
	"spinal_cord.nii.gz":                  {2.40, 0.84, 0.70},
	"gluteus_maximus_left.nii.gz":         {1.40, 0.76, 0.90},
	"gluteus_maximus_right.nii.gz":        {1.40, 0.76, 0.90},
	"gluteus_medius_left.nii.gz":          {0.87, 0.88, 0.60},
	"gluteus_medius_right.nii.gz":         {0.87, 0.88, 0.60},
	"gluteus_minimus_left.nii.gz":         {2.13, 0.63, 0.82},
	"gluteus_minimus_right.nii.gz":        {2.13, 0.63, 0.82},
	"autochthon_left.nii.gz":              {3.60, 0.65, 0.77},
	"autochthon_right.nii.gz":             {3.60, 0.65, 0.77},
	"iliopsoas_left.nii.gz":               {0.64, 0.48, 0.68},
	"iliopsoas_right.nii.gz":              {0.64, 0.48, 0.68},
	"brain.nii.gz":                        {1.70, 0.20, 0.94},
	"skull.nii.gz":                        {0.74, 0.35, 0.97},
	"rib_right_4.nii.gz":                  {0.74, 0.35, 0.97},
	"rib_right_3.nii.gz":                  {0.74, 0.35, 0.97},
	"rib_left_1.nii.gz":                   {0.74, 0.35, 0.97},
	"rib_left_2.nii.gz":                   {0.74, 0.35, 0.97},
	"rib_left_3.nii.gz":                   {0.74, 0.35, 0.97},
	"rib_left_4.nii.gz":                   {0.74, 0.35, 0.97},
	"rib_left_5.nii.gz":                   {0.74, 0.35, 0.97},
	"rib_left_6.nii.gz":                   {0.74, 0.35, 0.97},
	"rib_left_7.nii.gz":                   {0.74, 0.35, 0.97},
	"rib_left_8.nii.gz":                   {0.74, 0.35, 0.97},
	"rib_left_9.nii.gz":                   {0.74, 0.35, 0.97},
	"rib_left_10.nii.gz":                  {0.74, 0.35, 0.97},
	"rib_left_11.nii.gz":                  {0.74, 0.35, 0.97},
	"rib_left_12.nii.gz":                  {0.74, 0.35, 0.97},
	"rib_right_1.nii.gz":                  {0.74, 0.35, 0.97},
	"rib_right_2.nii.gz":                  {0.74, 0.35, 0.97},
	"rib_right_5.nii.gz":                  {0.74, 0.35, 0.97},
	"rib_right_6.nii.gz":                  {0.74, 0.35, 0.97},
	"rib_right_7.nii.gz":                  {0.74, 0.35, 0.97},
	"rib_right_8.nii.gz":                  {0.74, 0.35, 0.97},
	"rib_right_9.nii.gz":                  {0.74, 0.35, 0.97},
	"rib_right_10.nii.gz":                 {0.74, 0.35, 0.97},
	"rib_right_11.nii.gz":                 {0.74, 0.35, 0.97},
	"rib_right_12.nii.gz":                 {0.74, 0.35, 0.97},
	"sternum.nii.gz":                      {0.74, 0.35, 0.97},
	"costal_cartilages.nii.gz":            {0.74, 0.35, 0.97},
}
