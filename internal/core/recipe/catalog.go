package recipe

import "fridgechef/internal/pkg/common"

// Catalog 本地食譜目錄
// 遠端生成失敗或未啟用時的唯一來源，內容必須完整可直接出餐
var Catalog = []common.CatalogEntry{
	{
		Name:              "Egg Bowl",
		Time:              "15 min",
		Difficulty:        common.DifficultyEasy,
		Calories:          420,
		NutritionBenefits: "優質蛋白質與碳水，快速補充能量",
		UsedIngredients:   []string{"egg", "rice", "cheese", "onion"},
		Ingredients:       []string{"2 顆蛋", "1 碗白飯", "30g 起司絲", "半顆洋蔥", "少許鹽與黑胡椒"},
		Instructions: []common.InstructionStep{
			{Title: "備料", Detail: "洋蔥切丁，蛋打散加少許鹽。"},
			{Title: "炒香", Detail: "熱鍋下洋蔥炒到透明，倒入蛋液快速拌炒。"},
			{Title: "組合", Detail: "炒蛋鋪在熱飯上，撒起司絲趁熱拌勻。"},
		},
	},
	{
		Name:              "Fresh Garden Salad",
		Time:              "10 min",
		Difficulty:        common.DifficultyEasy,
		Calories:          180,
		NutritionBenefits: "高纖低卡，富含維生素 C 與水分",
		UsedIngredients:   []string{"lettuce", "tomato", "cucumber", "onion"},
		Ingredients:       []string{"半顆蘿蔓生菜", "1 顆番茄", "半根小黃瓜", "1/4 顆紫洋蔥", "橄欖油與醋"},
		Instructions: []common.InstructionStep{
			{Title: "切配", Detail: "生菜撕小片，番茄切瓣，小黃瓜切片，洋蔥切細絲泡水去嗆。"},
			{Title: "調味", Detail: "橄欖油與醋以三比一混合，加鹽與黑胡椒。"},
			{Title: "拌勻", Detail: "上桌前才淋醬拌勻，保持蔬菜脆度。"},
		},
	},
	{
		Name:              "Tomato Egg Stir-fry",
		Time:              "15 min",
		Difficulty:        common.DifficultyEasy,
		Calories:          280,
		NutritionBenefits: "茄紅素搭配蛋白質，家常下飯",
		UsedIngredients:   []string{"tomato", "egg", "garlic", "onion"},
		Ingredients:       []string{"2 顆番茄", "3 顆蛋", "2 瓣蒜", "半顆洋蔥", "少許糖與鹽"},
		Instructions: []common.InstructionStep{
			{Title: "炒蛋", Detail: "蛋液下熱油鍋炒到七分熟先盛起。"},
			{Title: "燒番茄", Detail: "蒜末洋蔥爆香，下番茄塊炒出湯汁，加一小撮糖。"},
			{Title: "合炒", Detail: "炒蛋回鍋拌勻，以鹽調味即完成。"},
		},
	},
	{
		Name:              "Creamy Carrot Soup",
		Time:              "30 min",
		Difficulty:        common.DifficultyEasy,
		Calories:          220,
		NutritionBenefits: "β-胡蘿蔔素豐富，溫潤順口",
		UsedIngredients:   []string{"carrot", "onion", "milk", "butter"},
		Ingredients:       []string{"3 根紅蘿蔔", "1 顆洋蔥", "200ml 牛奶", "20g 奶油", "500ml 高湯或水"},
		Instructions: []common.InstructionStep{
			{Title: "炒底", Detail: "奶油融化後下洋蔥丁與紅蘿蔔片炒軟。"},
			{Title: "燉煮", Detail: "加高湯煮 15 分鐘至紅蘿蔔全軟。"},
			{Title: "打勻", Detail: "打成泥後倒回鍋中，加牛奶小火加熱，鹽調味。"},
		},
	},
	{
		Name:              "Roasted Potato Wedges",
		Time:              "40 min",
		Difficulty:        common.DifficultyEasy,
		Calories:          310,
		NutritionBenefits: "飽足感高，鉀含量豐富",
		UsedIngredients:   []string{"potato", "garlic", "olive oil"},
		Ingredients:       []string{"3 顆馬鈴薯", "3 瓣蒜", "2 大匙橄欖油", "鹽、黑胡椒、紅椒粉"},
		Instructions: []common.InstructionStep{
			{Title: "切塊", Detail: "馬鈴薯帶皮切角塊，泡水十分鐘後瀝乾擦乾。"},
			{Title: "調味", Detail: "拌入橄欖油、蒜末與調味料。"},
			{Title: "烘烤", Detail: "200 度烤 30 分鐘，中途翻面一次至金黃。"},
		},
	},
	{
		Name:              "Cheese Omelette",
		Time:              "10 min",
		Difficulty:        common.DifficultyEasy,
		Calories:          350,
		NutritionBenefits: "高蛋白早餐，鈣質充足",
		UsedIngredients:   []string{"egg", "cheese", "butter", "milk"},
		Ingredients:       []string{"3 顆蛋", "40g 起司絲", "10g 奶油", "1 大匙牛奶", "少許鹽"},
		Instructions: []common.InstructionStep{
			{Title: "打蛋", Detail: "蛋加牛奶與鹽打勻。"},
			{Title: "煎製", Detail: "奶油小火融化，倒入蛋液輕推至半熟。"},
			{Title: "包餡", Detail: "撒起司後對折，關火靠餘溫融化起司。"},
		},
	},
	{
		Name:              "Garlic Butter Chicken",
		Time:              "25 min",
		Difficulty:        common.DifficultyMedium,
		Calories:          480,
		NutritionBenefits: "高蛋白低碳，蒜香濃郁",
		UsedIngredients:   []string{"chicken", "garlic", "butter", "lemon"},
		Ingredients:       []string{"2 片雞胸肉", "4 瓣蒜", "30g 奶油", "半顆檸檬", "鹽與黑胡椒"},
		Instructions: []common.InstructionStep{
			{Title: "煎雞", Detail: "雞胸拍平調味，中火每面煎 5 分鐘至熟。"},
			{Title: "蒜奶醬", Detail: "原鍋下奶油與蒜末，小火炒香後擠入檸檬汁。"},
			{Title: "回淋", Detail: "醬汁淋回雞肉，靜置三分鐘再切。"},
		},
	},
	{
		Name:              "Vegetable Fried Rice",
		Time:              "20 min",
		Difficulty:        common.DifficultyEasy,
		Calories:          450,
		NutritionBenefits: "清冰箱利器，營養均衡",
		UsedIngredients:   []string{"rice", "egg", "carrot", "onion", "soy sauce"},
		Ingredients:       []string{"2 碗隔夜飯", "2 顆蛋", "1 根紅蘿蔔", "半顆洋蔥", "1 大匙醬油"},
		Instructions: []common.InstructionStep{
			{Title: "炒蛋", Detail: "蛋炒散盛起備用。"},
			{Title: "炒料", Detail: "洋蔥與紅蘿蔔丁炒軟。"},
			{Title: "下飯", Detail: "飯壓散炒勻，沿鍋邊嗆醬油，蛋回鍋拌勻。"},
		},
	},
	{
		Name:              "Creamy Mushroom Pasta",
		Time:              "25 min",
		Difficulty:        common.DifficultyMedium,
		Calories:          520,
		NutritionBenefits: "菇類多醣體與乳製品鈣質",
		UsedIngredients:   []string{"pasta", "mushroom", "cream", "garlic", "cheese"},
		Ingredients:       []string{"200g 義大利麵", "150g 蘑菇", "150ml 鮮奶油", "2 瓣蒜", "帕瑪森起司"},
		Instructions: []common.InstructionStep{
			{Title: "煮麵", Detail: "滾水加鹽煮麵至彈牙，留一杯煮麵水。"},
			{Title: "炒菇", Detail: "蒜末爆香，蘑菇片大火炒出焦邊。"},
			{Title: "收汁", Detail: "倒入鮮奶油與麵條拌煮，用煮麵水調濃稠，起鍋撒起司。"},
		},
	},
	{
		Name:              "Banana Oat Pancakes",
		Time:              "20 min",
		Difficulty:        common.DifficultyEasy,
		Calories:          380,
		NutritionBenefits: "無精製糖，膳食纖維豐富",
		UsedIngredients:   []string{"banana", "oats", "egg", "milk"},
		Ingredients:       []string{"2 根熟香蕉", "1 杯燕麥", "2 顆蛋", "100ml 牛奶", "少許肉桂粉"},
		Instructions: []common.InstructionStep{
			{Title: "打糊", Detail: "全部材料打成滑順麵糊，靜置五分鐘。"},
			{Title: "煎製", Detail: "小火每面煎兩分鐘至金黃。"},
			{Title: "盛盤", Detail: "疊起佐蜂蜜或新鮮水果。"},
		},
	},
	{
		Name:              "Beef and Broccoli Stir-fry",
		Time:              "25 min",
		Difficulty:        common.DifficultyMedium,
		Calories:          430,
		NutritionBenefits: "鐵質與維生素 K，蛋白質充足",
		UsedIngredients:   []string{"beef", "broccoli", "garlic", "soy sauce", "ginger"},
		Ingredients:       []string{"250g 牛肉片", "1 顆青花菜", "3 瓣蒜", "2 大匙醬油", "薑片"},
		Instructions: []common.InstructionStep{
			{Title: "醃肉", Detail: "牛肉用醬油與少許太白粉抓醃十分鐘。"},
			{Title: "汆燙", Detail: "青花菜汆燙 90 秒撈起。"},
			{Title: "快炒", Detail: "薑蒜爆香，牛肉大火炒至變色，青花菜回鍋拌炒。"},
		},
	},
	{
		Name:              "Spinach Tofu Soup",
		Time:              "15 min",
		Difficulty:        common.DifficultyEasy,
		Calories:          150,
		NutritionBenefits: "植物性蛋白與葉酸，清爽低卡",
		UsedIngredients:   []string{"spinach", "tofu", "garlic", "ginger"},
		Ingredients:       []string{"1 把菠菜", "1 盒嫩豆腐", "2 瓣蒜", "薑絲", "600ml 高湯"},
		Instructions: []common.InstructionStep{
			{Title: "煮湯底", Detail: "高湯加薑絲蒜片煮滾。"},
			{Title: "下豆腐", Detail: "豆腐切塊輕放入鍋，小滾三分鐘。"},
			{Title: "下菠菜", Detail: "菠菜燙軟即關火，鹽調味。"},
		},
	},
}

// FindCatalogEntry 依名稱查詢目錄項目
func FindCatalogEntry(name string) (common.CatalogEntry, bool) {
	for _, e := range Catalog {
		if e.Name == name {
			return e, true
		}
	}
	return common.CatalogEntry{}, false
}
